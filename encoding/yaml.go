package encoding

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// classDescriptor mirrors one named-class entry in a YAML encoding
// descriptor:
//
//	name: non_primary_whitespace
//	catch_all: false
//	ranges:
//	  - [0x2000, 0x200A]
//	  - [0x2028, 0x2029]
type classDescriptor struct {
	Name     string      `yaml:"name"`
	CatchAll bool        `yaml:"catch_all"`
	Ranges   [][2]uint32 `yaml:"ranges"`
}

// descriptor mirrors a whole encoding descriptor document.
//
//	name: my-encoding
//	primary_range: [0, 0xFFFF]
//	classes:
//	  - name: non_primary_whitespace
//	    ranges: [[0x2000, 0x200A]]
type descriptor struct {
	Name         string            `yaml:"name"`
	PrimaryRange [2]uint32         `yaml:"primary_range"`
	Classes      []classDescriptor `yaml:"classes"`
}

// LoadClasses parses a YAML encoding descriptor and returns the Encoding
// it describes. This is the host-facing alternative to assembling an
// Encoding by hand with New/AddClass/SetCatchAll, used when class sets
// are large or shared across grammars.
func LoadClasses(data []byte) (*Encoding, error) {
	var doc descriptor
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "encoding: parsing descriptor")
	}
	if doc.Name == "" {
		return nil, errors.New("encoding: descriptor missing name")
	}
	if doc.PrimaryRange[1] < doc.PrimaryRange[0] {
		return nil, errors.New("encoding: descriptor has an empty primary_range")
	}
	e := New(doc.Name, rune(doc.PrimaryRange[0]), rune(doc.PrimaryRange[1]))
	var catchAll string
	for _, c := range doc.Classes {
		ranges := make([]RuneRange, len(c.Ranges))
		for i, r := range c.Ranges {
			if r[1] < r[0] {
				return nil, errors.Errorf("encoding: class %q has an empty range", c.Name)
			}
			ranges[i] = RuneRange{Lo: rune(r[0]), Hi: rune(r[1])}
		}
		e.AddClass(c.Name, ranges)
		if c.CatchAll {
			if catchAll != "" {
				return nil, errors.Errorf("encoding: descriptor declares two catch-all classes: %q and %q", catchAll, c.Name)
			}
			catchAll = c.Name
		}
	}
	if catchAll != "" {
		e.SetCatchAll(catchAll)
	}
	return e, nil
}
