// Package discover locates the run's required inputs in the target
// directory: the register template, the uniquely matching statement PDF,
// and the statement period encoded in the directory name.
package discover

import (
	"fmt"
	"path/filepath"

	"bookkeeping/corp-register/internal/fileutils"
	"bookkeeping/corp-register/internal/logging"
	"bookkeeping/corp-register/internal/models"
	"bookkeeping/corp-register/internal/runerror"
)

// Inputs are the resolved inputs of one run.
type Inputs struct {
	Directory    string
	TemplatePath string
	PDFPath      string
	Period       models.StatementPeriod
}

// Discover resolves the run inputs from the target directory. The directory
// name's last segment must match YYYY-MM, the template must exist under its
// exact expected name, and exactly one PDF must contain the match substring.
func Discover(dir, templateName, pdfMatch string) (*Inputs, error) {
	log := logging.GetLogger().WithField("component", "Discover")

	if !fileutils.DirectoryExists(dir) {
		return nil, &runerror.DiscoveryError{
			Directory: dir,
			Reason:    "directory not found",
		}
	}

	period, err := models.ParseStatementPeriod(filepath.Base(filepath.Clean(dir)))
	if err != nil {
		return nil, &runerror.DiscoveryError{
			Directory: dir,
			Reason:    "malformed period in directory name",
			Err:       err,
		}
	}

	templatePath := filepath.Join(dir, templateName)
	if !fileutils.FileExists(templatePath) {
		return nil, &runerror.DiscoveryError{
			Directory: dir,
			Reason:    fmt.Sprintf("register template %q not found", templateName),
		}
	}

	pdfs, err := fileutils.ListFilesMatching(dir, pdfMatch, ".pdf")
	if err != nil {
		return nil, &runerror.DiscoveryError{
			Directory: dir,
			Reason:    "failed to scan for statement PDF",
			Err:       err,
		}
	}

	switch len(pdfs) {
	case 0:
		return nil, &runerror.DiscoveryError{
			Directory: dir,
			Reason:    fmt.Sprintf("no PDF containing %q found", pdfMatch),
		}
	case 1:
		// exactly one match, proceed
	default:
		return nil, &runerror.DiscoveryError{
			Directory: dir,
			Reason:    fmt.Sprintf("%d PDFs containing %q found, expected exactly one", len(pdfs), pdfMatch),
		}
	}

	log.Info("Resolved run inputs",
		logging.Field{Key: logging.FieldDirectory, Value: dir},
		logging.Field{Key: logging.FieldPeriod, Value: period.String()},
		logging.Field{Key: logging.FieldFile, Value: pdfs[0]})

	return &Inputs{
		Directory:    dir,
		TemplatePath: templatePath,
		PDFPath:      pdfs[0],
		Period:       period,
	}, nil
}
