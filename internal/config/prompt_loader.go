package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified.
// The result replaces the loaded prompt state atomically, so the watcher can call
// this again after a file change.
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	var fresh AllLoadedPrompts

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &fresh.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &fresh.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.Optimize.CustomPrompts.SystemPrompts, &fresh.Optimize.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load optimize system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Optimize.CustomPrompts.UserPrompts, &fresh.Optimize.UserPrompts); err != nil {
		return fmt.Errorf("failed to load optimize user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.Extract.CustomPrompts.SystemPrompts, &fresh.Extract.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load extract system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Extract.CustomPrompts.UserPrompts, &fresh.Extract.UserPrompts); err != nil {
		return fmt.Errorf("failed to load extract user prompts: %w", err)
	}

	setLoadedPrompts(fresh)

	c.logPromptLoadingSummary(fresh)

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	if prompts.OptimizeResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.OptimizeResumeFile, "system", "optimizeResume")
		if err != nil {
			return err
		}
		target.OptimizeResume = content
	}

	if prompts.ExtractJobFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractJobFile, "system", "extractJob")
		if err != nil {
			return err
		}
		target.ExtractJob = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	if prompts.OptimizeResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.OptimizeResumeFile, "user", "optimizeResume")
		if err != nil {
			return err
		}
		target.OptimizeResume = content
	}

	if prompts.ExtractJobFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractJobFile, "user", "extractJob")
		if err != nil {
			return err
		}
		target.ExtractJob = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	// Validate global prompt files
	validateFile(c.AI.CustomPrompts.SystemPrompts.OptimizeResumeFile, "system", "optimizeResume")
	validateFile(c.AI.CustomPrompts.SystemPrompts.ExtractJobFile, "system", "extractJob")
	validateFile(c.AI.CustomPrompts.UserPrompts.OptimizeResumeFile, "user", "optimizeResume")
	validateFile(c.AI.CustomPrompts.UserPrompts.ExtractJobFile, "user", "extractJob")

	// Validate operation-specific prompt files
	validateFile(c.AI.Optimize.CustomPrompts.SystemPrompts.OptimizeResumeFile, "optimize system", "optimizeResume")
	validateFile(c.AI.Optimize.CustomPrompts.UserPrompts.OptimizeResumeFile, "optimize user", "optimizeResume")
	validateFile(c.AI.Extract.CustomPrompts.SystemPrompts.ExtractJobFile, "extract system", "extractJob")
	validateFile(c.AI.Extract.CustomPrompts.UserPrompts.ExtractJobFile, "extract user", "extractJob")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary(prompts AllLoadedPrompts) {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptChecks := []struct {
		content string
		message string
	}{
		{prompts.Global.SystemPrompts.OptimizeResume, "[CONFIG] Global system optimize prompt: loaded from file"},
		{prompts.Global.SystemPrompts.ExtractJob, "[CONFIG] Global system extract prompt: loaded from file"},
		{prompts.Global.UserPrompts.OptimizeResume, "[CONFIG] Global user optimize prompt: loaded from file"},
		{prompts.Global.UserPrompts.ExtractJob, "[CONFIG] Global user extract prompt: loaded from file"},
		{prompts.Optimize.SystemPrompts.OptimizeResume, "[CONFIG] Optimize-specific system prompt: loaded from file"},
		{prompts.Optimize.UserPrompts.OptimizeResume, "[CONFIG] Optimize-specific user prompt: loaded from file"},
		{prompts.Extract.SystemPrompts.ExtractJob, "[CONFIG] Extract-specific system prompt: loaded from file"},
		{prompts.Extract.UserPrompts.ExtractJob, "[CONFIG] Extract-specific user prompt: loaded from file"},
	}

	promptCount := 0
	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}

// promptFilePaths returns every configured prompt file path, deduplicated.
// The prompt watcher uses this list to know which files to observe.
func (c *Config) promptFilePaths() []string {
	candidates := []string{
		c.AI.CustomPrompts.SystemPrompts.OptimizeResumeFile,
		c.AI.CustomPrompts.SystemPrompts.ExtractJobFile,
		c.AI.CustomPrompts.UserPrompts.OptimizeResumeFile,
		c.AI.CustomPrompts.UserPrompts.ExtractJobFile,
		c.AI.Optimize.CustomPrompts.SystemPrompts.OptimizeResumeFile,
		c.AI.Optimize.CustomPrompts.UserPrompts.OptimizeResumeFile,
		c.AI.Extract.CustomPrompts.SystemPrompts.ExtractJobFile,
		c.AI.Extract.CustomPrompts.UserPrompts.ExtractJobFile,
	}

	seen := make(map[string]struct{}, len(candidates))
	var paths []string
	for _, p := range candidates {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		paths = append(paths, abs)
	}
	return paths
}
