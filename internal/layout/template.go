package layout

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ElementType identifies the type of layout element.
type ElementType string

const (
	ElementTypeHeader    ElementType = "header"
	ElementTypeBox       ElementType = "box"
	ElementTypeIcon      ElementType = "icon"
	ElementTypeTitle     ElementType = "title"
	ElementTypeMessage   ElementType = "message"
	ElementTypeAppName   ElementType = "appname"
	ElementTypeInputs    ElementType = "inputs"
	ElementTypeTextInput ElementType = "textinput"
	ElementTypeComboBox  ElementType = "combobox"
	ElementTypeActions   ElementType = "actions"
	ElementTypeOK        ElementType = "ok"
	ElementTypeCancel    ElementType = "cancel"
)

// ValidElements lists all recognized element types.
var ValidElements = map[string]ElementType{
	"header":    ElementTypeHeader,
	"box":       ElementTypeBox,
	"icon":      ElementTypeIcon,
	"title":     ElementTypeTitle,
	"summary":   ElementTypeTitle,
	"message":   ElementTypeMessage,
	"body":      ElementTypeMessage,
	"appname":   ElementTypeAppName,
	"inputs":    ElementTypeInputs,
	"textinput": ElementTypeTextInput,
	"combobox":  ElementTypeComboBox,
	"actions":   ElementTypeActions,
	"ok":        ElementTypeOK,
	"cancel":    ElementTypeCancel,
}

// IsContainer reports whether elements of this type hold children.
func (t ElementType) IsContainer() bool {
	switch t {
	case ElementTypeHeader, ElementTypeBox, ElementTypeInputs, ElementTypeActions:
		return true
	}
	return false
}

// LayoutConfig represents the parsed layout structure ready for assembly.
type LayoutConfig struct {
	// Popup width in pixels (0 = use config default).
	Width    int
	Elements []LayoutElement
}

// LayoutElement represents a single element in the layout.
type LayoutElement struct {
	Type       ElementType
	Attributes map[string]string
	Children   []LayoutElement
}

// ParseTemplate parses an XML layout template from a reader.
func ParseTemplate(r io.Reader) (*LayoutConfig, error) {
	decoder := xml.NewDecoder(r)

	var config LayoutConfig
	found := false
	for !found {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "popup" {
			return nil, fmt.Errorf("template root must be <popup>, got <%s>", se.Name.Local)
		}

		for _, attr := range se.Attr {
			if attr.Name.Local == "width" {
				v, err := parsePixelValue(attr.Value)
				if err != nil {
					return nil, fmt.Errorf("invalid popup width %q: %w", attr.Value, err)
				}
				config.Width = v
			}
		}

		elements, err := parseElements(decoder)
		if err != nil {
			return nil, err
		}
		config.Elements = elements
		found = true
	}

	if !found {
		return nil, fmt.Errorf("template has no <popup> element")
	}
	return &config, nil
}

// parsePixelValue parses a pixel value string (e.g., "300", "300px") to int.
func parsePixelValue(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	var v int
	_, err := fmt.Sscanf(s, "%d", &v)
	return v, err
}

// parseElements recursively parses child elements.
func parseElements(decoder *xml.Decoder) ([]LayoutElement, error) {
	var elements []LayoutElement

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read element: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elemName := strings.ToLower(t.Name.Local)
			elemType, ok := ValidElements[elemName]
			if !ok {
				return nil, fmt.Errorf("unknown element type: %s", elemName)
			}

			elem := LayoutElement{
				Type:       elemType,
				Attributes: make(map[string]string),
			}
			for _, attr := range t.Attr {
				elem.Attributes[attr.Name.Local] = attr.Value
			}

			children, err := parseElements(decoder)
			if err != nil {
				return nil, err
			}
			if len(children) > 0 && !elemType.IsContainer() {
				return nil, fmt.Errorf("element %s cannot have children", elemName)
			}
			elem.Children = children

			elements = append(elements, elem)

		case xml.EndElement:
			return elements, nil
		}
	}

	return elements, nil
}

// ParseTemplateString parses a template from a string.
func ParseTemplateString(s string) (*LayoutConfig, error) {
	return ParseTemplate(strings.NewReader(s))
}

// LoadTemplate loads a template from file.
func LoadTemplate(path string) (*LayoutConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseTemplate(f)
}

// Loader handles loading layout templates from various sources.
type Loader struct {
	templatesDir string
}

// NewLoader creates a new template loader.
func NewLoader(templatesDir string) *Loader {
	return &Loader{templatesDir: templatesDir}
}

// Load loads a layout template by name.
// Checks user directory first, then falls back to embedded templates.
func (l *Loader) Load(name string) (*LayoutConfig, error) {
	if name == "" {
		name = DefaultTemplateName
	}

	if l.templatesDir != "" {
		templatePath := filepath.Join(l.templatesDir, name+".xml")
		if _, err := os.Stat(templatePath); err == nil {
			return LoadTemplate(templatePath)
		}
	}

	if config, ok := GetEmbeddedTemplate(name); ok {
		return config, nil
	}

	return nil, fmt.Errorf("layout template not found: %s", name)
}

// TemplateInfo describes a template available to Load.
type TemplateInfo struct {
	Name      string
	Path      string // user file, empty for an embedded template in use
	IsDefault bool
	Embedded  bool
	// Overridden marks an embedded template shadowed by a user file.
	Overridden bool
}

// List returns the embedded templates followed by the user templates,
// resolved the way Load resolves them.
func (l *Loader) List() ([]TemplateInfo, error) {
	index := make(map[string]int)
	var infos []TemplateInfo

	for _, name := range ListEmbeddedTemplates() {
		index[name] = len(infos)
		infos = append(infos, TemplateInfo{
			Name:      name,
			IsDefault: name == DefaultTemplateName,
			Embedded:  true,
		})
	}

	if l.templatesDir == "" {
		return infos, nil
	}

	entries, err := os.ReadDir(l.templatesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return infos, nil
		}
		return infos, err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".xml" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".xml")
		path := filepath.Join(l.templatesDir, entry.Name())

		if i, ok := index[name]; ok {
			infos[i].Path = path
			infos[i].Overridden = true
			continue
		}
		index[name] = len(infos)
		infos = append(infos, TemplateInfo{Name: name, Path: path})
	}

	return infos, nil
}

// DefaultLayout returns the default toast layout: icon beside a column of
// title, message and app name, then the inputs, then the buttons.
func DefaultLayout() *LayoutConfig {
	return &LayoutConfig{
		Elements: []LayoutElement{
			{
				Type: ElementTypeHeader,
				Children: []LayoutElement{
					{Type: ElementTypeIcon, Attributes: map[string]string{"size": "80"}},
					{
						Type:       ElementTypeBox,
						Attributes: map[string]string{"orientation": "vertical"},
						Children: []LayoutElement{
							{Type: ElementTypeTitle},
							{Type: ElementTypeMessage},
							{Type: ElementTypeAppName},
						},
					},
				},
			},
			{
				Type: ElementTypeInputs,
				Children: []LayoutElement{
					{Type: ElementTypeTextInput},
					{Type: ElementTypeComboBox},
				},
			},
			{
				Type: ElementTypeActions,
				Children: []LayoutElement{
					{Type: ElementTypeOK},
					{Type: ElementTypeCancel},
				},
			},
		},
	}
}
