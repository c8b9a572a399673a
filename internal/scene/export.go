package scene

import (
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/particle-trail/internal/host"
)

// ChannelKeys is the exported form of one animated channel.
type ChannelKeys struct {
	Channel host.Channel `yaml:"channel"`
	Keys    []Key        `yaml:"keys"`
}

// TargetKeys is the exported form of one animated node.
type TargetKeys struct {
	Target   host.Handle   `yaml:"target"`
	Parent   host.Handle   `yaml:"parent,omitempty"`
	Channels []ChannelKeys `yaml:"channels"`
}

// KeyframeDump lists every keyed target sorted by name, channels sorted by
// name, keys sorted by time.
func (s *Scene) KeyframeDump() []TargetKeys {
	var out []TargetKeys
	for _, target := range s.keys.Targets() {
		tk := TargetKeys{Target: target}
		if n := s.nodes[target]; n != nil {
			tk.Parent = n.Parent
		}
		byChannel := s.keys.channels[target]
		channels := make([]host.Channel, 0, len(byChannel))
		for ch := range byChannel {
			channels = append(channels, ch)
		}
		sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })
		for _, ch := range channels {
			tk.Channels = append(tk.Channels, ChannelKeys{Channel: ch, Keys: byChannel[ch]})
		}
		out = append(out, tk)
	}
	return out
}

// ExportKeyframes writes KeyframeDump as YAML.
func (s *Scene) ExportKeyframes(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.KeyframeDump()); err != nil {
		return err
	}
	return enc.Close()
}
