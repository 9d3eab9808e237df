// Package importer bulk-loads shoe records extracted from exported chat
// folders. Each folder holds a chat.txt export plus the image files the
// messages reference; records are loaded through the regular shoe
// service, so the same duplicate and validation rules apply as for the
// HTTP API.
package importer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/shoestock/internal/common"
	"github.com/dmitrijs2005/shoestock/internal/logging"
	"github.com/dmitrijs2005/shoestock/internal/server/models"
	"github.com/dmitrijs2005/shoestock/internal/server/services"
)

var (
	// A shoe code in SKU form ("FQ8714-001") mentioned after an image
	// reference, followed by the location marker word and a number.
	shoeInfoPattern = regexp.MustCompile(`(?s)IMG-\d{8}-WA\d{4}\.jpg.*?([A-Z]{2,}\d{4}-\d{3}).*?מיקום[\s\-־]*(\d+)`)

	imageRefPattern = regexp.MustCompile(`IMG-\d{8}-WA\d{4}\.jpg`)
)

// Extracted is one (code, location) pair pulled out of a chat export.
type Extracted struct {
	Code string
	Loc  int64
}

// ExtractShoeInfo scans chat text for shoe codes with their storage
// locations. Pairs whose location does not parse as an integer are dropped.
func ExtractShoeInfo(text string) []Extracted {
	matches := shoeInfoPattern.FindAllStringSubmatch(text, -1)

	var result []Extracted
	for _, m := range matches {
		loc, err := strconv.ParseInt(strings.TrimSpace(m[2]), 10, 64)
		if err != nil {
			continue
		}
		result = append(result, Extracted{Code: strings.TrimSpace(m[1]), Loc: loc})
	}
	return result
}

// FindImageForShoe locates the image file the chat associates with
// shoeCode. In an export the attachment and the code arrive as separate
// messages, attachment first, so the image belonging to a code is the
// nearest IMG reference preceding it. Returns "" when the code is absent,
// has no preceding reference, or the referenced file is not in folderPath.
func FindImageForShoe(folderPath, chatText, shoeCode string) string {
	idx := strings.Index(chatText, shoeCode)
	if idx < 0 {
		return ""
	}

	refs := imageRefPattern.FindAllString(chatText[:idx], -1)
	if len(refs) == 0 {
		return ""
	}

	path := filepath.Join(folderPath, refs[len(refs)-1])
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Result summarizes one folder import.
type Result struct {
	Added    int
	Skipped  int
	NoImages int
}

type Importer struct {
	shoes  *services.ShoeService
	logger logging.Logger
}

func NewImporter(shoes *services.ShoeService, logger logging.Logger) *Importer {
	return &Importer{shoes: shoes, logger: logger.With("module", "importer")}
}

// ImportFolder loads every shoe record found in folderPath's chat export,
// tagging each with shoeType. Records whose code already exists are
// counted as skipped, not treated as errors, so re-running an import is
// harmless.
func (i *Importer) ImportFolder(ctx context.Context, folderPath string, shoeType models.ShoeType) (*Result, error) {

	chatFile := filepath.Join(folderPath, "chat.txt")
	content, err := os.ReadFile(chatFile)
	if err != nil {
		return nil, fmt.Errorf("error reading chat export: %w", err)
	}

	chatText := string(content)
	extracted := ExtractShoeInfo(chatText)

	result := &Result{}
	typeName := string(shoeType)

	for _, shoe := range extracted {

		var image string
		if path := FindImageForShoe(folderPath, chatText, shoe.Code); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				i.logger.Warn(ctx, "error reading image", "code", shoe.Code, "path", path, "error", err.Error())
			} else {
				image = base64.StdEncoding.EncodeToString(data)
			}
		}
		if image == "" {
			result.NoImages++
		}

		loc := shoe.Loc
		err := i.shoes.Add(ctx, &services.AddShoeRequest{
			Code:  shoe.Code,
			Loc:   &loc,
			Type:  &typeName,
			Image: image,
		})
		if err != nil {
			if errors.Is(err, common.ErrorConflict) {
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("error adding shoe %s: %w", shoe.Code, err)
		}

		result.Added++
	}

	i.logger.Info(ctx, "import finished",
		"folder", folderPath, "type", typeName,
		"added", result.Added, "skipped", result.Skipped, "no_images", result.NoImages)

	return result, nil
}
