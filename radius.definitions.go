package radius

import (
	"io"
	"sort"

	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/itsatony/go-radius/internal"
)

// TagDefinitions is a YAML document of static tags:
//
//	placeholders:
//	  start: "{"
//	  end: "}"
//	tags:
//	  greeting:
//	    body: "Hello, {name}!"
//	    defaults:
//	      name: World
//	  box:
//	    body: "<div class=\"{class}\">{content}</div>"
//
// A defined tag renders its body with every {attr} placeholder replaced by
// the attribute value (or its default) and {content} replaced by the
// evaluated body of the tag. Unknown placeholders are left in place.
type TagDefinitions struct {
	Placeholders PlaceholderDelims        `yaml:"placeholders"`
	Tags         map[string]TagDefinition `yaml:"tags"`
}

// PlaceholderDelims are the delimiters around placeholders in bodies.
type PlaceholderDelims struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// TagDefinition describes one static tag.
type TagDefinition struct {
	Body     string            `yaml:"body"`
	Defaults map[string]string `yaml:"defaults"`
}

// ParseDefinitions reads a YAML definitions document.
func ParseDefinitions(r io.Reader) (*TagDefinitions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewDefinitionError(ErrMsgDefinitionsRead, err)
	}

	var defs TagDefinitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, NewDefinitionError(ErrMsgDefinitionsInvalid, err)
	}

	if defs.Placeholders.Start == "" {
		defs.Placeholders.Start = DefinitionPlaceholderStart
	}
	if defs.Placeholders.End == "" {
		defs.Placeholders.End = DefinitionPlaceholderEnd
	}

	for name := range defs.Tags {
		if !internal.IsValidTagName(name) {
			return nil, NewDefinitionError(ErrMsgDefinitionsInvalid,
				internal.NewRegistryError(internal.ErrMsgInvalidTagName, name))
		}
	}
	return &defs, nil
}

// Names returns the defined tag names in sorted order.
func (d *TagDefinitions) Names() []string {
	names := make([]string, 0, len(d.Tags))
	for name := range d.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply defines every tag on c, replacing existing handlers of the same name.
func (d *TagDefinitions) Apply(c *Context) error {
	for _, name := range d.Names() {
		fn, err := d.Tags[name].compile(d.Placeholders)
		if err != nil {
			return NewDefinitionError(ErrMsgDefinitionsInvalid, err)
		}
		if err := c.Define(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (t TagDefinition) compile(delims PlaceholderDelims) (TagFunc, error) {
	tpl, err := fasttemplate.NewTemplate(t.Body, delims.Start, delims.End)
	if err != nil {
		return nil, err
	}

	defaults := t.Defaults
	return func(attrs Attributes, inner ContentFunc) (string, error) {
		values := make(map[string]interface{}, len(defaults)+len(attrs)+1)
		for k, v := range defaults {
			values[k] = v
		}
		for k, v := range attrs {
			values[k] = v
		}
		content := ""
		if inner != nil {
			content = inner()
		}
		values[DefinitionContentKey] = content
		return tpl.ExecuteStringStd(values), nil
	}, nil
}

// LoadDefinitions parses YAML tag definitions from r and defines them on c.
func (c *Context) LoadDefinitions(r io.Reader) error {
	defs, err := ParseDefinitions(r)
	if err != nil {
		return err
	}
	if err := defs.Apply(c); err != nil {
		return err
	}
	c.logger.Debug(LogMsgDefinitionsLoaded, zap.Strings(LogFieldTags, defs.Names()))
	return nil
}
