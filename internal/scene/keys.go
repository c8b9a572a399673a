package scene

import (
	"sort"

	"github.com/Faultbox/particle-trail/internal/host"
)

// Key is one keyframe on a channel.
type Key struct {
	Time  int     `yaml:"time"`
	Value float32 `yaml:"value"`
}

// KeyStore holds keyframes per target and channel, sorted by time. Setting a
// key at an existing time replaces its value.
type KeyStore struct {
	channels map[host.Handle]map[host.Channel][]Key
	writes   int
}

// NewKeyStore returns an empty store.
func NewKeyStore() *KeyStore {
	return &KeyStore{channels: make(map[host.Handle]map[host.Channel][]Key)}
}

// Set inserts or replaces the key at time.
func (ks *KeyStore) Set(target host.Handle, ch host.Channel, time int, value float32) {
	ks.writes++

	byChannel, ok := ks.channels[target]
	if !ok {
		byChannel = make(map[host.Channel][]Key)
		ks.channels[target] = byChannel
	}

	keys := byChannel[ch]
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time >= time })
	if i < len(keys) && keys[i].Time == time {
		keys[i].Value = value
		return
	}
	keys = append(keys, Key{})
	copy(keys[i+1:], keys[i:])
	keys[i] = Key{Time: time, Value: value}
	byChannel[ch] = keys
}

// Keys returns the keys of one channel.
func (ks *KeyStore) Keys(target host.Handle, ch host.Channel) []Key {
	return ks.channels[target][ch]
}

// Has reports whether the channel carries any key.
func (ks *KeyStore) Has(target host.Handle, ch host.Channel) bool {
	return len(ks.channels[target][ch]) > 0
}

// Remove drops every channel of target.
func (ks *KeyStore) Remove(target host.Handle) {
	delete(ks.channels, target)
}

// Targets returns the keyed targets sorted by name.
func (ks *KeyStore) Targets() []host.Handle {
	targets := make([]host.Handle, 0, len(ks.channels))
	for t := range ks.channels {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// Count returns the number of stored keys.
func (ks *KeyStore) Count() int {
	n := 0
	for _, byChannel := range ks.channels {
		for _, keys := range byChannel {
			n += len(keys)
		}
	}
	return n
}

// Writes returns how many Set calls were made, including replacements.
func (ks *KeyStore) Writes() int {
	return ks.writes
}

// Evaluate interpolates the channel at time. Before the first key and after
// the last the end values are held; with no keys fallback is returned.
func (ks *KeyStore) Evaluate(target host.Handle, ch host.Channel, time float32, fallback float32) float32 {
	return interpolateKeys(ks.Keys(target, ch), time, fallback)
}

// interpolateKeys linearly interpolates keyframes sorted by time.
func interpolateKeys(keys []Key, time float32, fallback float32) float32 {
	if len(keys) == 0 {
		return fallback
	}
	if len(keys) == 1 {
		return keys[0].Value
	}

	// Find surrounding keyframes
	var prev, next int
	for i := range keys {
		if float32(keys[i].Time) > time {
			next = i
			break
		}
		prev = i
		next = i
	}

	// Before the first key or at/past the last one
	if prev == next {
		return keys[prev].Value
	}

	k0 := keys[prev]
	k1 := keys[next]
	t := (time - float32(k0.Time)) / float32(k1.Time-k0.Time)
	return k0.Value + t*(k1.Value-k0.Value)
}
