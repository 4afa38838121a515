package media

import (
	"fmt"
	"sort"
	"strings"
)

// Structure is a named set of fields. Its name is the media type, for
// example "audio/x-raw".
type Structure struct {
	Name   string
	Fields map[string]interface{}
}

// Caps describe the format of the data flowing through a pad. Caps with
// multiple structures describe alternatives.
type Caps struct {
	structures []Structure
}

// NewCaps returns caps with a single structure.
func NewCaps(name string, fields map[string]interface{}) Caps {
	return Caps{structures: []Structure{{Name: name, Fields: fields}}}
}

// Append returns caps extended with provided structures.
func (c Caps) Append(structures ...Structure) Caps {
	s := make([]Structure, 0, len(c.structures)+len(structures))
	s = append(s, c.structures...)
	return Caps{structures: append(s, structures...)}
}

// Size returns number of structures.
func (c Caps) Size() int {
	return len(c.structures)
}

// Structure returns the structure at index i.
func (c Caps) Structure(i int) (Structure, bool) {
	if i < 0 || i >= len(c.structures) {
		return Structure{}, false
	}
	return c.structures[i], true
}

// IsEmpty reports if caps have no structures.
func (c Caps) IsEmpty() bool {
	return len(c.structures) == 0
}

// String formats caps the way gst-launch prints them.
func (c Caps) String() string {
	if c.IsEmpty() {
		return "EMPTY"
	}
	s := make([]string, 0, len(c.structures))
	for _, st := range c.structures {
		s = append(s, st.String())
	}
	return strings.Join(s, "; ")
}

func (s Structure) String() string {
	if len(s.Fields) == 0 {
		return s.Name
	}
	keys := make([]string, 0, len(s.Fields))
	for k := range s.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(s.Name)
	for _, k := range keys {
		fmt.Fprintf(&b, ", %s=%v", k, s.Fields[k])
	}
	return b.String()
}
