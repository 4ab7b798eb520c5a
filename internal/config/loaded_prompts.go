package config

import (
	"sync"
)

var (
	loadedPrompts   AllLoadedPrompts
	loadedPromptsMu sync.RWMutex
)

// LoadedPrompts holds the content of prompts loaded from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	OptimizeResume string
	ExtractJob     string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	OptimizeResume string
	ExtractJob     string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global   LoadedPrompts
	Optimize OperationLoadedPrompts
	Extract  OperationLoadedPrompts
}

// getLoadedPromptsSnapshot returns a copy of the loaded prompt state.
// The prompt watcher replaces the state on file changes, so readers always
// take a snapshot under the read lock.
func getLoadedPromptsSnapshot() AllLoadedPrompts {
	loadedPromptsMu.RLock()
	defer loadedPromptsMu.RUnlock()
	return loadedPrompts
}

func setLoadedPrompts(prompts AllLoadedPrompts) {
	loadedPromptsMu.Lock()
	defer loadedPromptsMu.Unlock()
	loadedPrompts = prompts
}

// GetPromptsForOperation returns a copy of the loaded prompts for an operation type
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	snapshot := getLoadedPromptsSnapshot()

	switch operationType {
	case "optimize":
		return snapshot.Optimize
	case "extract":
		return snapshot.Extract
	default:
		return OperationLoadedPrompts{
			SystemPrompts: snapshot.Global.SystemPrompts,
			UserPrompts:   snapshot.Global.UserPrompts,
		}
	}
}
