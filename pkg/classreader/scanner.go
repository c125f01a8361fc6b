package classreader

import (
	"archive/zip"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	derrors "github.com/obqo/decycle/pkg/errors"
)

// Handler receives the classes and references found on a classpath. For
// every visited class, Class is called once, followed by Reference for
// each outgoing reference. Names are dot-separated fully qualified class
// names with '$' for nested classes.
type Handler interface {
	Class(name string)
	Reference(from, to string)
}

// Scanner walks classpath roots and feeds their classes to a Handler.
type Scanner struct {
	logger *log.Logger
}

// NewScanner creates a scanner. A nil logger discards scan diagnostics.
func NewScanner(logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scanner{logger: logger}
}

// Scan visits each classpath root in order. A root may be a directory, a
// single .class file, or a zip archive (.jar, .war, .zip). Files that are
// not class files are skipped silently; missing roots and read failures
// abort the scan.
func (s *Scanner) Scan(ctx context.Context, roots []string, h Handler) error {
	for _, root := range roots {
		if err := derrors.ValidateClasspathEntry(root); err != nil {
			return err
		}
		info, err := os.Stat(root)
		if err != nil {
			return derrors.Wrap(derrors.ErrCodeClasspathNotFound, err, "classpath entry %s", root)
		}
		if info.IsDir() {
			if err := s.scanDir(ctx, root, h); err != nil {
				return err
			}
			continue
		}
		if isArchive(root) {
			if err := s.scanArchive(ctx, root, h); err != nil {
				return err
			}
			continue
		}
		if err := s.scanFile(root, h); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) scanDir(ctx context.Context, dir string, h Handler) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(path, ".class") {
			return nil
		}
		return s.scanFile(path, h)
	})
}

func (s *Scanner) scanFile(path string, h Handler) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return derrors.Wrap(derrors.ErrCodeClasspathNotFound, err, "read %s", path)
	}
	return s.emit(path, data, h)
}

func (s *Scanner) scanArchive(ctx context.Context, path string, h Handler) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return derrors.Wrap(derrors.ErrCodeClasspathNotFound, err, "open archive %s", path)
	}
	defer r.Close()

	for _, f := range r.File {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		data, err := readZipEntry(f)
		if err != nil {
			return derrors.Wrap(derrors.ErrCodeClasspathNotFound, err, "read %s!%s", path, f.Name)
		}
		if err := s.emit(path+"!"+f.Name, data, h); err != nil {
			return err
		}
	}
	return nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *Scanner) emit(origin string, data []byte, h Handler) error {
	info, err := Parse(data)
	if err != nil {
		if IsNotClassFile(err) {
			s.logger.Debugf("Skipping %s: not a class file", origin)
			return nil
		}
		return err
	}
	s.logger.Debugf("Visiting %s (%d references)", info.Name, len(info.References))
	h.Class(info.Name)
	for _, ref := range info.References {
		h.Reference(info.Name, ref)
	}
	return nil
}

func isArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".war", ".zip":
		return true
	}
	return false
}
