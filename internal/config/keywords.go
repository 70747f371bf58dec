package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/certificate-sorter/internal/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LoadKeywordTable resolves the classification keywords.
// It follows this precedence:
// 1. classification.keywords_file (a YAML file with vendors and exclusions)
// 2. classification.vendors / classification.exclusions from the config
// 3. The built-in table
//
// A section missing from the chosen source falls back to the built-in one.
// Keywords are trimmed and lowercased.
func LoadKeywordTable(v *viper.Viper) (*model.KeywordTable, error) {
	defaults := model.DefaultKeywordTable()
	table := &model.KeywordTable{}

	if path := ExpandPath(v.GetString("classification.keywords_file")); path != "" {
		loaded, err := readKeywordFile(path)
		if err != nil {
			return nil, err
		}
		table = loaded
	} else {
		if v.IsSet("classification.vendors") {
			if err := v.UnmarshalKey("classification.vendors", &table.Vendors); err != nil {
				return nil, fmt.Errorf("failed to parse classification.vendors: %w", err)
			}
		}
		if v.IsSet("classification.exclusions") {
			table.Exclusions = v.GetStringSlice("classification.exclusions")
		}
	}

	if table.Vendors == nil {
		table.Vendors = defaults.Vendors
	}
	if table.Exclusions == nil {
		table.Exclusions = defaults.Exclusions
	}

	return normalize(table), nil
}

func readKeywordFile(path string) (*model.KeywordTable, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own config
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var table model.KeywordTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse keywords file %s: %w", path, err)
	}
	return &table, nil
}

func normalize(table *model.KeywordTable) *model.KeywordTable {
	out := &model.KeywordTable{
		Vendors:    make([]model.VendorKeywords, 0, len(table.Vendors)),
		Exclusions: normalizeKeywords(table.Exclusions),
	}
	for _, vendor := range table.Vendors {
		out.Vendors = append(out.Vendors, model.VendorKeywords{
			Name:     strings.TrimSpace(vendor.Name),
			Keywords: normalizeKeywords(vendor.Keywords),
		})
	}
	return out
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		out = append(out, kw)
	}
	return out
}
