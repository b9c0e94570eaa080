package subtotal

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/subtotal-go/pkg/subtotal/pipeline"
	"github.com/ukaji3/subtotal-go/pkg/subtotal/sheet"
	"github.com/xuri/excelize/v2"
)

// Process runs the whole pass: validates the input container, transforms the
// selected sheet, and saves the result to outputPath. The output file only
// becomes visible on full success; a failure mid-pass leaves nothing behind.
func Process(inputPath, outputPath string, opts Options) error {
	if err := ValidateInput(inputPath); err != nil {
		return NewProcessError(inputPath, "validate", err)
	}

	f, err := excelize.OpenFile(inputPath)
	if err != nil {
		return NewProcessError(inputPath, "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return NewProcessError(inputPath, "open", fmt.Errorf("sheet %q not found", sheetName))
	}

	src, err := sheet.OpenDualView(f, sheetName)
	if err != nil {
		return NewProcessError(inputPath, "open", err)
	}

	out := excelize.NewFile()
	defer out.Close()
	outSheet := out.GetSheetName(0)
	if outSheet != sheetName {
		if err := out.SetSheetName(outSheet, sheetName); err != nil {
			return NewProcessError(outputPath, "transform", err)
		}
	}
	dst := sheet.NewTarget(out, sheetName)

	w := pipeline.NewWriter(src, dst, pipeline.Config{
		HighlightColor: opts.highlightColor(),
		TotalLabel:     opts.totalLabel(),
		Logger:         opts.logger(),
	})
	if err := w.Run(); err != nil {
		return NewProcessError(inputPath, "transform", err)
	}

	if err := saveAtomic(out, outputPath); err != nil {
		return NewProcessError(outputPath, "save", err)
	}
	return nil
}

// ValidateInput checks that the path names an existing, genuine xlsx
// container: .xlsx extension, resolvable file, readable zip structure. A
// renamed .xls or corrupted file fails here, before any workbook parsing.
func ValidateInput(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("%w: only .xlsx files are supported: %s", ErrInvalidFormat, path)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return err
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: not a zip container: %s", ErrInvalidFormat, path)
	}
	return r.Close()
}

// BuildDefaultOutPath derives the default output path next to the input,
// appending the processed-file suffix before the extension.
func BuildDefaultOutPath(inPath string) string {
	ext := filepath.Ext(inPath)
	return strings.TrimSuffix(inPath, ext) + "_处理后.xlsx"
}

// saveAtomic writes the workbook to a temp file in the target directory and
// renames it into place, so partial output never becomes visible.
func saveAtomic(f *excelize.File, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".subtotal-*.xlsx")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
