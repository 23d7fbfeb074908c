package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "DONATIONS_TRACKER_CONFIG"

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	HTTP    HTTPConfig    `yaml:"http"`
	Search  SearchConfig  `yaml:"search"`
	Sources SourcesConfig `yaml:"sources"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HTTPConfig tunes the shared upstream HTTP client.
type HTTPConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"`
}

// Timeout resolves the configured client timeout.
func (c HTTPConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchConfig shapes a single query run.
type SearchConfig struct {
	YearsBack             int `yaml:"yearsBack"`
	AdapterTimeoutSeconds int `yaml:"adapterTimeoutSeconds"`
}

// AdapterTimeout is the independent per-jurisdiction fetch deadline.
func (c SearchConfig) AdapterTimeout() time.Duration {
	if c.AdapterTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.AdapterTimeoutSeconds) * time.Second
}

// SourcesConfig groups the static per-jurisdiction descriptors. They are
// loaded once at startup and never mutated during a query.
type SourcesConfig struct {
	UK          UKSourceConfig      `yaml:"uk"`
	Germany     GermanySourceConfig `yaml:"germany"`
	Austria     DatasetSourceConfig `yaml:"austria"`
	Italy       DatasetSourceConfig `yaml:"italy"`
	Netherlands DatasetSourceConfig `yaml:"netherlands"`
	EU          EUSourceConfig      `yaml:"eu"`
}

// SourceInfo documents one source on the report's documentation sheet.
type SourceInfo struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	Coverage  string `yaml:"coverage"`
	Threshold string `yaml:"threshold"`
}

// UKSourceConfig describes the Electoral Commission CSV export API.
type UKSourceConfig struct {
	BaseURL string     `yaml:"baseUrl"`
	Info    SourceInfo `yaml:"info"`
}

// GermanySourceConfig maps disclosure years to their Bundestag pages; the URL
// suffix changes per year, so each one is listed explicitly.
type GermanySourceConfig struct {
	YearURLs map[int]string `yaml:"yearUrls"`
	Info     SourceInfo     `yaml:"info"`
}

// DatasetSourceConfig describes a single downloadable dataset file.
type DatasetSourceConfig struct {
	URL  string     `yaml:"url"`
	Info SourceInfo `yaml:"info"`
}

// EUSourceConfig maps years to the APPF donations workbook published for
// that year.
type EUSourceConfig struct {
	YearURLs map[int]string `yaml:"yearUrls"`
	Info     SourceInfo     `yaml:"info"`
}

// Load reads YAML configuration (if present) and applies defaults.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	return cfg
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}
	if override.HTTP.TimeoutSeconds > 0 {
		base.HTTP = override.HTTP
	}
	if override.Search.YearsBack > 0 {
		base.Search.YearsBack = override.Search.YearsBack
	}
	if override.Search.AdapterTimeoutSeconds > 0 {
		base.Search.AdapterTimeoutSeconds = override.Search.AdapterTimeoutSeconds
	}

	if override.Sources.UK.BaseURL != "" {
		base.Sources.UK.BaseURL = override.Sources.UK.BaseURL
	}
	base.Sources.UK.Info = mergeInfo(base.Sources.UK.Info, override.Sources.UK.Info)

	if len(override.Sources.Germany.YearURLs) > 0 {
		base.Sources.Germany.YearURLs = override.Sources.Germany.YearURLs
	}
	base.Sources.Germany.Info = mergeInfo(base.Sources.Germany.Info, override.Sources.Germany.Info)

	if override.Sources.Austria.URL != "" {
		base.Sources.Austria.URL = override.Sources.Austria.URL
	}
	base.Sources.Austria.Info = mergeInfo(base.Sources.Austria.Info, override.Sources.Austria.Info)

	if override.Sources.Italy.URL != "" {
		base.Sources.Italy.URL = override.Sources.Italy.URL
	}
	base.Sources.Italy.Info = mergeInfo(base.Sources.Italy.Info, override.Sources.Italy.Info)

	if override.Sources.Netherlands.URL != "" {
		base.Sources.Netherlands.URL = override.Sources.Netherlands.URL
	}
	base.Sources.Netherlands.Info = mergeInfo(base.Sources.Netherlands.Info, override.Sources.Netherlands.Info)

	if len(override.Sources.EU.YearURLs) > 0 {
		base.Sources.EU.YearURLs = override.Sources.EU.YearURLs
	}
	base.Sources.EU.Info = mergeInfo(base.Sources.EU.Info, override.Sources.EU.Info)

	return base
}

func mergeInfo(base, override SourceInfo) SourceInfo {
	if override.Name != "" {
		base.Name = override.Name
	}
	if override.URL != "" {
		base.URL = override.URL
	}
	if override.Coverage != "" {
		base.Coverage = override.Coverage
	}
	if override.Threshold != "" {
		base.Threshold = override.Threshold
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		HTTP:    HTTPConfig{TimeoutSeconds: 30},
		Search:  SearchConfig{YearsBack: 5, AdapterTimeoutSeconds: 60},
		Sources: SourcesConfig{
			UK: UKSourceConfig{
				BaseURL: "https://search.electoralcommission.org.uk/api/csv/Donations",
				Info: SourceInfo{
					Name:      "UK Electoral Commission",
					URL:       "https://search.electoralcommission.org.uk",
					Coverage:  "2001-present",
					Threshold: "£11,180 (central party), £2,230 (accounting units)",
				},
			},
			Germany: GermanySourceConfig{
				YearURLs: map[int]string{
					2025: "https://www.bundestag.de/parlament/praesidium/parteienfinanzierung/fundstellen50000/2025/2025-inhalt-1032412",
					2024: "https://www.bundestag.de/parlament/praesidium/parteienfinanzierung/fundstellen50000/2024/2024-inhalt-984862",
					2023: "https://www.bundestag.de/parlament/praesidium/parteienfinanzierung/fundstellen50000/2023",
					2022: "https://www.bundestag.de/parlament/praesidium/parteienfinanzierung/fundstellen50000/2022/2022-inhalt-879480",
					2021: "https://www.bundestag.de/parlament/praesidium/parteienfinanzierung/fundstellen50000/2021/2021-inhalt-816896",
					2020: "https://www.bundestag.de/parlament/praesidium/parteienfinanzierung/fundstellen50000/2020/2020-inhalt-678704",
				},
				Info: SourceInfo{
					Name:      "German Bundestag",
					URL:       "https://www.bundestag.de/parlament/parteienfinanzierung",
					Coverage:  "2002-present (immediate disclosure)",
					Threshold: "€35,000 immediate (€50,000 before March 2024), €10,000 annual reports",
				},
			},
			Austria: DatasetSourceConfig{
				URL: "https://www.data.gv.at/katalog/dataset/parteispenden/resource/spendenmeldungen.csv",
				Info: SourceInfo{
					Name:      "Austrian Court of Audit (Rechnungshof)",
					URL:       "https://www.rechnungshof.gv.at/rh/home/was-wir-tun/was-wir-tun_4/Parteienfinanzierung.html",
					Coverage:  "2019-present",
					Threshold: "€2,500 immediate disclosure, €500 itemized annually",
				},
			},
			Italy: DatasetSourceConfig{
				URL: "https://raw.githubusercontent.com/openpolis/partiti-finanziamenti/main/data/erogazioni-liberali.csv",
				Info: SourceInfo{
					Name:      "Italian Chamber of Deputies (via Openpolis dataset)",
					URL:       "https://www.camera.it/leg19/1067",
					Coverage:  "2018-present",
					Threshold: "€500 (transparency obligation)",
				},
			},
			Netherlands: DatasetSourceConfig{
				URL: "https://www.rijksoverheid.nl/binaries/rijksoverheid/documenten/publicaties/overzicht-giften-politieke-partijen/overzicht-giften-politieke-partijen.ods",
				Info: SourceInfo{
					Name:      "Dutch Ministry of the Interior (Wfpp register)",
					URL:       "https://www.rijksoverheid.nl/onderwerpen/financien-politieke-partijen",
					Coverage:  "2013-present",
					Threshold: "€4,500 (Wfpp disclosure)",
				},
			},
			EU: EUSourceConfig{
				YearURLs: map[int]string{
					2025: "https://www.appf.europa.eu/cmsdata/299571/2025%20PARTIES%20Donations%20table%20as%20of%202025-11-03.xlsx",
					2024: "https://www.appf.europa.eu/cmsdata/291887/2024%20PARTIES%20Donations%20table%20as%20of%202024-12-04.xlsx",
				},
				Info: SourceInfo{
					Name:      "EU Authority for Political Parties (APPF)",
					URL:       "https://www.appf.europa.eu",
					Coverage:  "2018-present",
					Threshold: "€12,000",
				},
			},
		},
	}
}
