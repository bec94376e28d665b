package settings

import (
	"path/filepath"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// codec reads and writes the persisted record in one on-disk format
type codec struct {
	name    string
	parser  koanf.Parser
	marshal func(v interface{}) ([]byte, error)
}

var (
	tomlCodec = codec{name: "toml", parser: toml.Parser(), marshal: gotoml.Marshal}
	yamlCodec = codec{name: "yaml", parser: kyaml.Parser(), marshal: yaml.Marshal}
)

// codecFor picks the format from the file extension, TOML unless it is
// .yaml or .yml
func codecFor(location string) codec {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return yamlCodec
	default:
		return tomlCodec
	}
}
