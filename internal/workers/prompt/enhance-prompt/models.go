// internal/workers/prompt/enhance-prompt/models.go
package enhanceprompt

import "promptcraft/internal/prompt/stok"

type Input struct {
	Prompt string `json:"prompt"`
	Mode   string `json:"mode,omitempty"`
}

type Output struct {
	RequestID   string              `json:"requestId"`
	Enhancement stok.PipelineResult `json:"enhancement"`
}
