package config

import (
	"fmt"

	"github.com/Veraticus/certificate-sorter/internal/common"
	"github.com/spf13/viper"
)

// Archive backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// S3 holds the object storage archive settings.
type S3 struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Region    string
	Prefix    string
	UseSSL    bool
}

// OCR holds the external OCR tool settings.
type OCR struct {
	Tesseract         string
	Pdftoppm          string
	Language          string
	DPI               int
	MaxImageDimension int
}

// Settings is the resolved configuration for a scan.
type Settings struct {
	S3             S3
	OCR            OCR
	Root           string
	OutputDir      string
	ReportPath     string
	ArchiveBackend string
	DatabasePath   string
	OCRFallback    bool
	VerifyContent  bool
	History        bool
	Progress       bool
}

// SetDefaults registers default values for every key certsort reads.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scan.root", "./colaboradores")
	v.SetDefault("output.dir", "certificados_por_fabricante")
	v.SetDefault("report.path", "certificados_encontrados.csv")

	v.SetDefault("extraction.ocr_fallback", false)
	v.SetDefault("extraction.verify_content", true)

	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.dpi", 200)
	v.SetDefault("ocr.max_image_dimension", 4000)

	v.SetDefault("archive.backend", BackendLocal)
	v.SetDefault("archive.s3.use_ssl", true)

	v.SetDefault("history.enabled", false)
	v.SetDefault("database.path", "$HOME/.local/share/certsort/certsort.db")

	v.SetDefault("progress.enabled", true)
}

// Load resolves settings from v. Defaults must already be registered.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Root:           ExpandPath(v.GetString("scan.root")),
		OutputDir:      ExpandPath(v.GetString("output.dir")),
		ReportPath:     ExpandPath(v.GetString("report.path")),
		ArchiveBackend: v.GetString("archive.backend"),
		DatabasePath:   ExpandPath(v.GetString("database.path")),
		OCRFallback:    v.GetBool("extraction.ocr_fallback"),
		VerifyContent:  v.GetBool("extraction.verify_content"),
		History:        v.GetBool("history.enabled"),
		Progress:       v.GetBool("progress.enabled"),
		OCR: OCR{
			Tesseract:         v.GetString("ocr.tesseract"),
			Pdftoppm:          v.GetString("ocr.pdftoppm"),
			Language:          v.GetString("ocr.language"),
			DPI:               v.GetInt("ocr.dpi"),
			MaxImageDimension: v.GetInt("ocr.max_image_dimension"),
		},
		S3: S3{
			Endpoint:  v.GetString("archive.s3.endpoint"),
			Bucket:    v.GetString("archive.s3.bucket"),
			AccessKey: v.GetString("archive.s3.access_key"),
			SecretKey: v.GetString("archive.s3.secret_key"),
			Region:    v.GetString("archive.s3.region"),
			Prefix:    v.GetString("archive.s3.prefix"),
			UseSSL:    v.GetBool("archive.s3.use_ssl"),
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.Root == "" {
		return fmt.Errorf("%w: scan.root", common.ErrMissingConfig)
	}
	if s.ReportPath == "" {
		return fmt.Errorf("%w: report.path", common.ErrMissingConfig)
	}
	if s.OCR.DPI <= 0 {
		return fmt.Errorf("%w: ocr.dpi must be positive", common.ErrInvalidConfig)
	}

	switch s.ArchiveBackend {
	case BackendLocal:
		if s.OutputDir == "" {
			return fmt.Errorf("%w: output.dir", common.ErrMissingConfig)
		}
	case BackendS3:
		if s.S3.Endpoint == "" || s.S3.Bucket == "" {
			return fmt.Errorf("%w: archive.s3.endpoint and archive.s3.bucket", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: unknown archive backend %q", common.ErrInvalidConfig, s.ArchiveBackend)
	}

	if s.History && s.DatabasePath == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	return nil
}
