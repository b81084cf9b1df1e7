package lottery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const catalogYAML = `lotteries:
  - code: mega-sena
    name: Mega-Sena
    number_range: 60
    min_game_size: 6
    max_game_size: 10
    pricing:
      "6": "5.00"
      "7": "35.00"
  - code: quina
    name: Quina
    number_range: 80
    min_game_size: 5
    max_game_size: 7
    pricing:
      "5": "2.50"
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lotteries.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog(writeCatalog(t, catalogYAML))
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	wantCodes := []string{"mega-sena", "quina"}
	if got := catalog.Codes(); !reflect.DeepEqual(got, wantCodes) {
		t.Errorf("Codes() = %v, want %v", got, wantCodes)
	}

	mega, ok := catalog.Get("mega-sena")
	if !ok {
		t.Fatal("Get(mega-sena) not found")
	}
	if mega.NumberRange != 60 || mega.MinGameSize != 6 {
		t.Errorf("unexpected mega-sena modality: %+v", mega)
	}
	price, ok := mega.PriceFor(7)
	if !ok || price.String() != "35" {
		t.Errorf("PriceFor(7) = %s, %v; want 35, true", price, ok)
	}

	if _, ok := catalog.Get("lotomania"); ok {
		t.Error("Get(lotomania) found an unregistered modality")
	}

	if got := len(catalog.Modalities()); got != 2 {
		t.Errorf("Modalities() returned %d entries, want 2", got)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "empty catalog",
			content: "lotteries: []\n",
		},
		{
			name: "invalid price",
			content: `lotteries:
  - code: mega-sena
    name: Mega-Sena
    number_range: 60
    min_game_size: 6
    max_game_size: 10
    pricing:
      "6": "cinco"
`,
		},
		{
			name: "invalid pricing size",
			content: `lotteries:
  - code: mega-sena
    name: Mega-Sena
    number_range: 60
    min_game_size: 6
    max_game_size: 10
    pricing:
      "six": "5.00"
`,
		},
		{
			name: "incoherent modality",
			content: `lotteries:
  - code: mega-sena
    name: Mega-Sena
    number_range: 60
    min_game_size: 11
    max_game_size: 10
    pricing:
      "6": "5.00"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCatalog(writeCatalog(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadCatalogMissingPath(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
