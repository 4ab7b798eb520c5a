package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create test prompt files
	systemPromptContent := "Test system prompt for optimization"
	userPromptContent := "Test user prompt template: %s and %s"

	systemPromptFile := filepath.Join(tempDir, "system.optimize.md")
	userPromptFile := filepath.Join(tempDir, "user.optimize.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}

	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	// Create test config
	config := &Config{
		AI: AIConfig{
			Optimize: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						OptimizeResumeFile: systemPromptFile,
					},
					UserPrompts: UserPrompts{
						OptimizeResumeFile: userPromptFile,
					},
				},
			},
		},
	}

	// Test file loading
	err := config.loadPromptsFromFiles()
	if err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify content was loaded into the shared prompt store
	loadedOps := GetPromptsForOperation("optimize")

	if loadedOps.SystemPrompts.OptimizeResume != systemPromptContent {
		t.Errorf("Expected loaded system prompt content '%s', got '%s'",
			systemPromptContent, loadedOps.SystemPrompts.OptimizeResume)
	}

	if loadedOps.UserPrompts.OptimizeResume != userPromptContent {
		t.Errorf("Expected loaded user prompt content '%s', got '%s'",
			userPromptContent, loadedOps.UserPrompts.OptimizeResume)
	}

	// Verify file paths are preserved
	if config.AI.Optimize.CustomPrompts.SystemPrompts.OptimizeResumeFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}

	if config.AI.Optimize.CustomPrompts.UserPrompts.OptimizeResumeFile != userPromptFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}

func TestValidatePromptFiles(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create a valid test file
	validFile := filepath.Join(tempDir, "valid.md")
	if err := os.WriteFile(validFile, []byte("Valid content"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	// Test with valid file
	config := &Config{
		AI: AIConfig{
			Optimize: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						OptimizeResumeFile: validFile,
					},
				},
			},
		},
	}

	err := config.validatePromptFiles()
	if err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	// Test with non-existent file
	config.AI.Optimize.CustomPrompts.SystemPrompts.OptimizeResumeFile = filepath.Join(tempDir, "nonexistent.md")

	err = config.validatePromptFiles()
	if err == nil {
		t.Error("Expected validation to fail for non-existent file")
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Test with valid file
	content := "Test prompt content"
	testFile := filepath.Join(tempDir, "test.md")
	if err := os.WriteFile(testFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	config := &Config{}
	loadedContent, err := config.loadPromptFromFile(testFile, "system", "optimize")
	if err != nil {
		t.Fatalf("Failed to load prompt from file: %v", err)
	}

	if loadedContent != content {
		t.Errorf("Expected content '%s', got '%s'", content, loadedContent)
	}

	// Test with empty file
	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte(""), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}

	_, err = config.loadPromptFromFile(emptyFile, "system", "optimize")
	if err == nil {
		t.Error("Expected error for empty file")
	}

	// Test with non-existent file
	_, err = config.loadPromptFromFile(filepath.Join(tempDir, "nonexistent.md"), "system", "optimize")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestPromptFileIntegration(t *testing.T) {
	// Create temporary directory and config file
	tempDir := t.TempDir()

	// Create test prompt files
	systemPrompt := "Custom system prompt for testing"
	userPrompt := "Custom user prompt: %s %s"

	systemFile := filepath.Join(tempDir, "system.md")
	userFile := filepath.Join(tempDir, "user.md")

	if err := os.WriteFile(systemFile, []byte(systemPrompt), 0600); err != nil {
		t.Fatalf("Failed to create system prompt file: %v", err)
	}

	if err := os.WriteFile(userFile, []byte(userPrompt), 0600); err != nil {
		t.Fatalf("Failed to create user prompt file: %v", err)
	}

	// Create a minimal config that would load these files
	config := &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "test-model",
			Timeout:     60 * time.Second,
			APIKey:      "test-key",
			MaxRetries:  3,
			Temperature: 0.7,
			Extract: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						ExtractJobFile: systemFile,
					},
					UserPrompts: UserPrompts{
						ExtractJobFile: userFile,
					},
				},
			},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
	}

	// Apply fallbacks (simulating the full config loading process)
	config.applyFallbacks()

	// Validate and load prompt files
	if err := config.validatePromptFiles(); err != nil {
		t.Fatalf("Prompt file validation failed: %v", err)
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify the prompts were loaded correctly into the shared store
	loadedOps := GetPromptsForOperation("extract")

	if loadedOps.SystemPrompts.ExtractJob != systemPrompt {
		t.Errorf("Expected system prompt '%s', got '%s'",
			systemPrompt, loadedOps.SystemPrompts.ExtractJob)
	}

	if loadedOps.UserPrompts.ExtractJob != userPrompt {
		t.Errorf("Expected user prompt '%s', got '%s'",
			userPrompt, loadedOps.UserPrompts.ExtractJob)
	}

	// Verify the original config paths are preserved
	if config.AI.Extract.CustomPrompts.SystemPrompts.ExtractJobFile != systemFile {
		t.Error("Expected system prompt file path to be preserved")
	}

	if config.AI.Extract.CustomPrompts.UserPrompts.ExtractJobFile != userFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}

func TestPromptWatcherReload(t *testing.T) {
	tempDir := t.TempDir()

	promptFile := filepath.Join(tempDir, "system.optimize.md")
	if err := os.WriteFile(promptFile, []byte("Initial prompt"), 0600); err != nil {
		t.Fatalf("Failed to create prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Optimize: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						OptimizeResumeFile: promptFile,
					},
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	watcher := NewPromptWatcher(config, 10*time.Millisecond, nil)
	if watcher == nil {
		t.Fatal("Expected watcher for config with prompt files")
	}

	if err := watcher.Start(); err != nil {
		t.Fatalf("Failed to start prompt watcher: %v", err)
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			t.Errorf("Failed to stop prompt watcher: %v", err)
		}
	}()

	if !watcher.IsRunning() {
		t.Error("Expected watcher to be running after Start")
	}

	if err := os.WriteFile(promptFile, []byte("Updated prompt"), 0600); err != nil {
		t.Fatalf("Failed to update prompt file: %v", err)
	}

	// Poll until the debounced reload lands or we give up
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if GetPromptsForOperation("optimize").SystemPrompts.OptimizeResume == "Updated prompt" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Errorf("Expected reloaded prompt content, got '%s'",
		GetPromptsForOperation("optimize").SystemPrompts.OptimizeResume)
}

func TestPromptWatcherNoFiles(t *testing.T) {
	config := &Config{}
	if watcher := NewPromptWatcher(config, time.Second, nil); watcher != nil {
		t.Error("Expected nil watcher when no prompt files are configured")
	}
}
