package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"business_valuation/pkg/core/utils"
)

//go:embed builtin
var builtinFS embed.FS

// LoadBuiltin registers the prompts compiled into the binary.
func LoadBuiltin(r *Registry) error {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return err
	}
	_, err = loadPrompts(r, sub)
	return err
}

// LoadFromDirectory loads every prompt file under baseDir, overriding
// registered prompts with the same ID. Expected structure:
//
//	baseDir/
//	  category1/
//	    prompt1.json
//	  category2/
//	    prompt2.hjson
//
// It returns the number of prompts loaded.
func LoadFromDirectory(r *Registry, baseDir string) (int, error) {
	if _, err := os.Stat(baseDir); err != nil {
		return 0, fmt.Errorf("prompts directory not found: %s", baseDir)
	}
	n, err := loadPrompts(r, os.DirFS(baseDir))
	if err != nil {
		return n, fmt.Errorf("failed to load prompts: %w", err)
	}
	return n, nil
}

// loadPrompts walks fsys for .json and .hjson prompt files.
func loadPrompts(r *Registry, fsys fs.FS) (int, error) {
	count := 0
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		ext := filepath.Ext(path)
		if d.IsDir() || (ext != ".json" && ext != ".hjson") {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var pt PromptTemplate
		if err := utils.DecodeLenient(data, &pt); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		// Auto-generate ID from path if not specified
		if pt.ID == "" {
			pt.ID = generateIDFromPath(path)
		}

		// Auto-detect category from folder name if not specified
		if pt.Category == "" {
			pt.Category = detectCategory(path)
		}

		if _, err := template.New(pt.ID).Parse(pt.UserPromptTmpl); err != nil {
			return fmt.Errorf("invalid template in %s: %w", path, err)
		}

		if err := r.Register(&pt); err != nil {
			return fmt.Errorf("failed to register %s: %w", pt.ID, err)
		}
		count++
		return nil
	})
	return count, err
}

// generateIDFromPath creates a prompt ID from the file path
// e.g., "commentary/deal_review.json" -> "commentary.deal_review"
func generateIDFromPath(path string) string {
	id := strings.TrimSuffix(path, filepath.Ext(path))
	return strings.ReplaceAll(id, "/", ".")
}

// detectCategory extracts the category from the folder structure
func detectCategory(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 1 {
		return parts[0]
	}
	return "default"
}

// RenderUserPrompt executes the user prompt template with the given context
func RenderUserPrompt(pt *PromptTemplate, ctx *PromptExecutionContext) (string, error) {
	if pt.UserPromptTmpl == "" {
		return "", nil
	}

	tmpl, err := template.New(pt.ID).Option("missingkey=error").Parse(pt.UserPromptTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx.Variables); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
