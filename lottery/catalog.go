package lottery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Catalog holds every lottery modality the service knows about.
type Catalog struct {
	modalities map[string]Modality
}

// catalogFile is the raw YAML shape of the catalog. Prices are strings so
// they survive YAML parsing without float rounding.
type catalogFile struct {
	Lotteries []modalityEntry `mapstructure:"lotteries"`
}

type modalityEntry struct {
	Code        string            `mapstructure:"code"`
	Name        string            `mapstructure:"name"`
	NumberRange int               `mapstructure:"number_range"`
	MinGameSize int               `mapstructure:"min_game_size"`
	MaxGameSize int               `mapstructure:"max_game_size"`
	Pricing     map[string]string `mapstructure:"pricing"`
}

// LoadCatalog loads the modality catalog from a YAML file or a directory of
// YAML files (merged in alphabetical order, later files override earlier).
func LoadCatalog(configPath string) (*Catalog, error) {
	info, err := os.Stat(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog path: %w", err)
	}

	var raw catalogFile
	if info.IsDir() {
		if err := loadYAMLFromDirInto(configPath, &raw); err != nil {
			return nil, err
		}
	} else {
		if err := loadYAMLInto(configPath, &raw); err != nil {
			return nil, err
		}
	}

	return buildCatalog(raw)
}

func buildCatalog(raw catalogFile) (*Catalog, error) {
	if len(raw.Lotteries) == 0 {
		return nil, fmt.Errorf("lottery catalog is empty")
	}

	modalities := make(map[string]Modality, len(raw.Lotteries))
	for _, entry := range raw.Lotteries {
		pricing := make(map[int]decimal.Decimal, len(entry.Pricing))
		for sizeStr, priceStr := range entry.Pricing {
			size, err := strconv.Atoi(sizeStr)
			if err != nil {
				return nil, fmt.Errorf("modality %s: invalid pricing size %q", entry.Code, sizeStr)
			}
			price, err := decimal.NewFromString(priceStr)
			if err != nil {
				return nil, fmt.Errorf("modality %s: invalid price %q for size %d", entry.Code, priceStr, size)
			}
			pricing[size] = price
		}

		modality := Modality{
			Code:        entry.Code,
			Name:        entry.Name,
			NumberRange: entry.NumberRange,
			MinGameSize: entry.MinGameSize,
			MaxGameSize: entry.MaxGameSize,
			Pricing:     pricing,
		}
		if err := modality.Validate(); err != nil {
			return nil, err
		}
		if _, dup := modalities[modality.Code]; dup {
			return nil, fmt.Errorf("duplicate modality code %s in catalog", modality.Code)
		}
		modalities[modality.Code] = modality
	}

	return &Catalog{modalities: modalities}, nil
}

// Get returns the modality registered under code.
func (c *Catalog) Get(code string) (Modality, bool) {
	m, ok := c.modalities[code]
	return m, ok
}

// Codes returns all registered modality codes, sorted.
func (c *Catalog) Codes() []string {
	codes := lo.Keys(c.modalities)
	sort.Strings(codes)
	return codes
}

// Modalities returns all registered modalities sorted by code.
func (c *Catalog) Modalities() []Modality {
	return lo.Map(c.Codes(), func(code string, _ int) Modality {
		return c.modalities[code]
	})
}

func loadYAMLInto(configPath string, out interface{}) error {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return nil
}

func loadYAMLFromDirInto(configDir string, out interface{}) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	entries, err := os.ReadDir(configDir)
	if err != nil {
		return fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var yamlFiles []string
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if !entry.IsDir() && (strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			yamlFiles = append(yamlFiles, entry.Name())
		}
	}
	if len(yamlFiles) == 0 {
		return fmt.Errorf("no YAML files found in catalog directory: %s", configDir)
	}
	sort.Strings(yamlFiles)

	for _, filename := range yamlFiles {
		v.SetConfigFile(filepath.Join(configDir, filename))
		if err := v.MergeInConfig(); err != nil {
			return fmt.Errorf("failed to merge catalog from %s: %w", filename, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	return nil
}
