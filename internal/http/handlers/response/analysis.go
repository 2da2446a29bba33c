package response

import "medremind/internal/core/domain/recognition"

type Recognition struct {
	Success   bool                 `json:"success"`
	ImagePath *string              `json:"imagePath,omitempty"`
	Analysis  recognition.Analysis `json:"analysis"`
}
