package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"voxlate/internal/domain"
)

type Config struct {
	Services    ServicesConfig    `yaml:"services"`
	Audio       AudioConfig       `yaml:"audio"`
	Permissions PermissionsConfig `yaml:"permissions"`
	Export      ExportConfig      `yaml:"export"`
	Server      ServerConfig      `yaml:"server"`
	Languages   LanguagesConfig   `yaml:"languages"`
	Log         LogConfig         `yaml:"log"`
}

// ServicesConfig carries one base URL per capability. They are kept apart on
// purpose: the deployments seen so far do not agree on a single host.
type ServicesConfig struct {
	Translate  TranslateConfig  `yaml:"translate"`
	Speech     SpeechConfig     `yaml:"speech"`
	Transcribe TranscribeConfig `yaml:"transcribe"`
	OCR        OCRConfig        `yaml:"ocr"`
}

type TranslateConfig struct {
	BaseURL string `yaml:"base_url"`
	Path    string `yaml:"path"`
}

type SpeechConfig struct {
	BaseURL    string `yaml:"base_url"`
	Path       string `yaml:"path"`
	SpeakerWAV string `yaml:"speaker_wav"`
	Timeout    string `yaml:"timeout"`
}

type TranscribeConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Path     string `yaml:"path"`
	Language string `yaml:"language"`
	Timeout  string `yaml:"timeout"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

type OCRConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type AudioConfig struct {
	Device     string `yaml:"device"`
	RecordDir  string `yaml:"record_dir"`
	ClipDir    string `yaml:"clip_dir"`
	SampleRate int    `yaml:"sample_rate"`
	AutoPlay   bool   `yaml:"autoplay"`
}

type PermissionsConfig struct {
	Microphone   *bool `yaml:"microphone"`
	MediaLibrary *bool `yaml:"media_library"`
}

type ExportConfig struct {
	Dir      string        `yaml:"dir"`
	FileName string        `yaml:"file_name"`
	FontPath string        `yaml:"font_path"`
	Storage  StorageConfig `yaml:"storage"`
}

type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Secure    bool   `yaml:"secure"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AuthToken      string   `yaml:"auth_token"`
	RateLimit      int      `yaml:"rate_limit"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LanguagesConfig struct {
	Translation    domain.Catalog `yaml:"translation"`
	Speech         domain.Catalog `yaml:"speech"`
	Source         string         `yaml:"source"`
	Target         string         `yaml:"target"`
	Speak          string         `yaml:"speak"`
	DocumentSource string         `yaml:"document_source"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads an optional .env file next to the process, then the YAML config
// with ${VAR} references expanded from the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Services.Translate.Path == "" {
		c.Services.Translate.Path = "/translate"
	}
	if c.Services.Speech.Path == "" {
		c.Services.Speech.Path = "/tts"
	}
	if c.Services.Speech.Timeout == "" {
		c.Services.Speech.Timeout = "60s"
	}
	if c.Services.Transcribe.Provider == "" {
		c.Services.Transcribe.Provider = "service"
	}
	if c.Services.Transcribe.Path == "" {
		c.Services.Transcribe.Path = "/transcribe"
	}
	if c.Services.Transcribe.Timeout == "" {
		c.Services.Transcribe.Timeout = "60s"
	}
	if c.Services.OCR.URL == "" {
		c.Services.OCR.URL = "https://api.ocr.space/parse/image"
	}
	if c.Audio.Device == "" {
		c.Audio.Device = "microphone"
	}
	if c.Audio.RecordDir == "" {
		c.Audio.RecordDir = "./recordings"
	}
	if c.Audio.ClipDir == "" {
		c.Audio.ClipDir = "./clips"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "./exports"
	}
	if c.Export.FileName == "" {
		c.Export.FileName = "TranslatedDocument.pdf"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 30
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if len(c.Languages.Translation) == 0 {
		c.Languages.Translation = domain.DefaultCatalog()
	}
	if len(c.Languages.Speech) == 0 {
		c.Languages.Speech = domain.DefaultSpeechCatalog()
	}
	if c.Languages.Source == "" {
		c.Languages.Source = "en"
	}
	if c.Languages.Target == "" {
		c.Languages.Target = "hi"
	}
	if c.Languages.Speak == "" {
		c.Languages.Speak = "as"
	}
	if c.Languages.DocumentSource == "" {
		c.Languages.DocumentSource = "en"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	if _, err := c.SpeechTimeout(); err != nil {
		return fmt.Errorf("invalid services.speech.timeout: %w", err)
	}
	if _, err := c.TranscribeTimeout(); err != nil {
		return fmt.Errorf("invalid services.transcribe.timeout: %w", err)
	}
	if _, ok := c.Languages.Translation.Lookup(c.Languages.Source); !ok {
		return fmt.Errorf("languages.source %q: %w", c.Languages.Source, domain.ErrUnknownLanguage)
	}
	if _, ok := c.Languages.Translation.Lookup(c.Languages.Target); !ok {
		return fmt.Errorf("languages.target %q: %w", c.Languages.Target, domain.ErrUnknownLanguage)
	}
	if _, ok := c.Languages.Speech.Lookup(c.Languages.Speak); !ok {
		return fmt.Errorf("languages.speak %q: %w", c.Languages.Speak, domain.ErrUnknownLanguage)
	}
	switch c.Services.Transcribe.Provider {
	case "service", "openai":
	default:
		return fmt.Errorf("unknown transcribe provider %q", c.Services.Transcribe.Provider)
	}
	return nil
}

// SpeechTimeout is the synthesis wait bound; zero disables it.
func (c *Config) SpeechTimeout() (time.Duration, error) {
	return parseDuration(c.Services.Speech.Timeout)
}

func (c *Config) TranscribeTimeout() (time.Duration, error) {
	return parseDuration(c.Services.Transcribe.Timeout)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "0" || s == "none" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// MicrophoneAllowed defaults to granted when the key is absent.
func (p PermissionsConfig) MicrophoneAllowed() bool {
	return p.Microphone == nil || *p.Microphone
}

func (p PermissionsConfig) MediaLibraryAllowed() bool {
	return p.MediaLibrary == nil || *p.MediaLibrary
}
