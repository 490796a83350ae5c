// Package config loads the editor configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/arbor/internal/editor"
	"github.com/aretw0/arbor/pkg/domain"
)

// Defaults of optional keys.
const (
	DefaultLongAnswerQuestion = "Would you like to know more?"
	DefaultIntentPrefix       = "Z."
	DefaultNodeCode           = "300"
	DefaultIrrelevantMarker   = "irrelevant"
	DefaultGreeting           = "Hello"
)

// Config drives every editor command.
type Config struct {
	Workspace     string `mapstructure:"workspace"`
	Output        string `mapstructure:"output"`
	WorkspaceName string `mapstructure:"workspaceName"`

	// RemoveWorkspaceID drops the workspace_id key before saving, so the
	// output can be imported as a new workspace.
	RemoveWorkspaceID bool `mapstructure:"removeWorkspaceId"`

	YesCondition           string `mapstructure:"yesCondition"`
	NoCondition            string `mapstructure:"noCondition"`
	SameIntentCondition    string `mapstructure:"sameIntentCondition"`
	ResponseToNo           string `mapstructure:"responseToNo"`
	CollapseDialogByIntent bool   `mapstructure:"collapseDialogByIntent"`

	BreakTag           string `mapstructure:"breakTag"`
	YesNoTag           string `mapstructure:"yesNoTag"`
	LongAnswerQuestion string `mapstructure:"longAnswerQuestion"`
	FormatHTML         bool   `mapstructure:"formatHTML"`

	IrrelevantMarker     string `mapstructure:"irrelevantMarker"`
	KeepPreviousIntents  bool   `mapstructure:"keepPreviousIntents"`
	KeepPreviousEntities bool   `mapstructure:"keepPreviousEntities"`

	Stitch   []Stitch         `mapstructure:"stitch"`
	Intents  []string         `mapstructure:"intents"`
	Entities []string         `mapstructure:"entities"`
	Merge    Merge            `mapstructure:"merge"`
	Topics   map[string]Topic `mapstructure:"topics"`

	// Dialogs lists the topics assembled into a whole new dialog.
	Dialogs  []string `mapstructure:"dialogs"`
	Greeting string   `mapstructure:"greeting"`
}

// Stitch names a topic whose dialog replaces the subtree below Node.
type Stitch struct {
	Topic string `mapstructure:"topic"`
	Node  string `mapstructure:"node"`
}

// Merge names the workspace merged into the configured one.
type Merge struct {
	Source string `mapstructure:"source"`
}

// Topic describes one tabular source and the headers to read from it.
type Topic struct {
	File         string `mapstructure:"file"`
	Sheet        string `mapstructure:"sheet"`
	FilterHeader string `mapstructure:"filterHeader"`
	FilterRegex  string `mapstructure:"filterRegex"`

	Answers     string `mapstructure:"answers"`
	Intent      string `mapstructure:"intent"`
	Conditions  string `mapstructure:"conditions"`
	EntityType  string `mapstructure:"entityType"`
	EntityValue string `mapstructure:"entityValue"`
	Emotion     string `mapstructure:"emotion"`

	IntentPrefix string `mapstructure:"intentPrefix"`
	NodeCode     string `mapstructure:"nodeCode"`

	LongAnswer       string `mapstructure:"longAnswer"`
	LongAnswerFilter string `mapstructure:"longAnswerFilter"`

	FollowOnIntent  string `mapstructure:"followOnIntent"`
	FollowOnWording string `mapstructure:"followOnWording"`
	FollowOnFilter  string `mapstructure:"followOnFilter"`

	Question   string `mapstructure:"question"`
	Entity     string `mapstructure:"entity"`
	Value      string `mapstructure:"value"`
	Synonym    string `mapstructure:"synonym"`
	FuzzyMatch bool   `mapstructure:"fuzzyMatch"`

	// Document is a JSON file holding a ready-made array of dialog nodes,
	// used instead of a table.
	Document string `mapstructure:"document"`
}

// Default returns a configuration holding only the defaults.
func Default() *Config {
	return &Config{
		SameIntentCondition:    editor.DefaultSameIntentCondition,
		ResponseToNo:           editor.DefaultResponseToNo,
		CollapseDialogByIntent: true,
		LongAnswerQuestion:     DefaultLongAnswerQuestion,
		FormatHTML:             true,
		IrrelevantMarker:       DefaultIrrelevantMarker,
		Greeting:               DefaultGreeting,
	}
}

// Load reads a configuration file (YAML or JSON, by extension). Relative
// paths inside it are resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes configuration bytes. ext selects JSON for ".json" and YAML
// otherwise.
func Parse(data []byte, ext string) (*Config, error) {
	raw := map[string]any{}
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config yaml: %w", err)
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.fillTopicDefaults()
	return cfg, nil
}

func (c *Config) fillTopicDefaults() {
	for name, t := range c.Topics {
		if t.IntentPrefix == "" {
			t.IntentPrefix = DefaultIntentPrefix
		}
		if t.NodeCode == "" {
			t.NodeCode = DefaultNodeCode
		}
		if t.FilterRegex == "" {
			t.FilterRegex = ".*"
		}
		if t.LongAnswerFilter == "" {
			t.LongAnswerFilter = ".+"
		}
		if t.FollowOnFilter == "" {
			t.FollowOnFilter = ".+"
		}
		c.Topics[name] = t
	}
}

func (c *Config) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) || strings.Contains(p, "://") {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Workspace = abs(c.Workspace)
	c.Output = abs(c.Output)
	c.Merge.Source = abs(c.Merge.Source)
	for name, t := range c.Topics {
		t.File = abs(t.File)
		t.Document = abs(t.Document)
		c.Topics[name] = t
	}
}

// Topic returns the named topic.
func (c *Config) Topic(name string) (Topic, error) {
	t, ok := c.Topics[name]
	if !ok {
		return Topic{}, fmt.Errorf("%w: %q", domain.ErrTopicNotFound, name)
	}
	return t, nil
}

// EditorOptions maps the collapse conventions onto editor options. The
// yes/no conditions are passed only as configured, so clusters get no
// confirmation children unless they are set.
func (c *Config) EditorOptions() editor.Options {
	o := editor.DefaultOptions()
	o.YesCondition = c.YesCondition
	o.NoCondition = c.NoCondition
	o.SameIntentCondition = c.SameIntentCondition
	o.ResponseToNo = c.ResponseToNo
	o.Collapse = c.CollapseDialogByIntent
	return o
}
