package simulation

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrInvalidConfig = errors.New("invalid search config")
	ErrCacheMiss     = errors.New("cache miss")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SearchConfig selects what a search may pick from and how long it runs.
// Empty TargetIDs make every skill and item mod eligible.
type SearchConfig struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name"`
	StartLevel    int      `json:"startLevel" validate:"min=1"`
	EndLevel      int      `json:"endLevel" validate:"gtefield=StartLevel"`
	NumIterations int      `json:"numIterations" validate:"min=1"`
	MaxSupports   int      `json:"maxSupports" validate:"min=0"`
	MaxMods       int      `json:"maxMods" validate:"min=0"`
	TargetIDs     []string `json:"targetIds" validate:"dive,required"`
	PriorityIDs   []string `json:"priorityIds" validate:"dive,required"`
}

// Validate checks field constraints.
func (c SearchConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" "+fe.Tag())
			}
			return fmt.Errorf("config %q: %s: %w", c.ID, strings.Join(fields, ", "), ErrInvalidConfig)
		}
		return fmt.Errorf("config %q: %v: %w", c.ID, err, ErrInvalidConfig)
	}
	return nil
}

// Targets reports whether id is eligible under the config.
func (c SearchConfig) Targets(id string) bool {
	return len(c.TargetIDs) == 0 || slices.Contains(c.TargetIDs, id)
}

// Levels returns the number of levels searched.
func (c SearchConfig) Levels() int {
	return c.EndLevel - c.StartLevel + 1
}

// Fingerprint hashes the fields that affect search results.
func (c SearchConfig) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	for _, part := range []string{
		c.ID,
		strconv.Itoa(c.MaxSupports),
		strconv.Itoa(c.MaxMods),
		strings.Join(c.TargetIDs, ","),
		strings.Join(c.PriorityIDs, ","),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LoadConfigs reads a JSON array of search configs from path.
func LoadConfigs(path string) ([]SearchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading search configs: %w", err)
	}
	return ParseConfigs(data)
}

// ParseConfigs parses a JSON array of search configs. Configs are not
// validated here; the runner validates each one so a bad config only
// aborts itself.
func ParseConfigs(data []byte) ([]SearchConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("search configs: malformed JSON: %w", ErrInvalidConfig)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("search configs: expected an array: %w", ErrInvalidConfig)
	}

	var cfgs []SearchConfig
	for _, c := range root.Array() {
		cfgs = append(cfgs, SearchConfig{
			ID:            c.Get("id").String(),
			Name:          c.Get("name").String(),
			StartLevel:    int(c.Get("startLevel").Int()),
			EndLevel:      int(c.Get("endLevel").Int()),
			NumIterations: int(c.Get("numIterations").Int()),
			MaxSupports:   int(c.Get("maxSupports").Int()),
			MaxMods:       int(c.Get("maxMods").Int()),
			TargetIDs:     stringArray(c.Get("targetIds")),
			PriorityIDs:   stringArray(c.Get("priorityIds")),
		})
	}
	return cfgs, nil
}

func stringArray(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}
