package internal

import (
	"encoding/json"
	"strings"
)

// Enhancement categories derived from a free-form prompt. Categories bias
// the transformation without requiring the caller to hand-author full
// structured instructions.
const (
	CategorySketch         = "sketch_enhancement"
	CategoryPhotorealistic = "photorealistic_transformation"
	CategoryDigitalArt     = "digital_art_transformation"
	CategoryInstruction    = "instruction_following"
	CategoryGeneral        = "general_enhancement"
)

// InstructionSchema is the structured payload describing how the generation
// service should transform an annotated canvas capture.
type InstructionSchema struct {
	Task                 string                 `json:"task"`
	InputAnalysis        map[string]interface{} `json:"input_analysis"`
	InstructionHandling  map[string]bool        `json:"instruction_processing"`
	OutputRequirements   map[string]interface{} `json:"output_requirements"`
	QualityStandards     map[string]interface{} `json:"quality_standards"`
	StylePreservation    map[string]bool        `json:"style_preservation"`
	EnhancementType      string                 `json:"enhancement_type,omitempty"`
	StyleDirection       string                 `json:"style_direction,omitempty"`
	CustomRequirements   []string               `json:"custom_requirements,omitempty"`
	OriginalPromptIntent string                 `json:"original_prompt_intent,omitempty"`
	ProcessingPriority   []string               `json:"processing_priority,omitempty"`
}

// baselineSchema declares the invariant part of every instruction payload:
// treat the input as an annotated canvas, read arrows and text, exclude
// markup and interface elements from the output, and keep lighting and
// integration consistent.
func baselineSchema() *InstructionSchema {
	return &InstructionSchema{
		Task: "visual_image_enhancement",
		InputAnalysis: map[string]interface{}{
			"canvas_type":            "visual_prompting_canvas",
			"contains_instructions":  true,
			"instruction_types":      []string{"arrows", "text_annotations", "visual_cues", "markup_elements"},
			"content_identification": "identify_main_subject_and_instructions",
		},
		InstructionHandling: map[string]bool{
			"read_arrows":              true,
			"follow_text_annotations":  true,
			"interpret_visual_cues":    true,
			"understand_composition":   true,
			"maintain_creative_intent": true,
		},
		OutputRequirements: map[string]interface{}{
			"exclude_from_output": []string{
				"instruction_arrows",
				"annotation_text",
				"canvas_interface",
				"toolbars",
				"markup_elements",
				"ui_elements",
				"borders",
				"empty_canvas_space",
			},
			"include_in_output": "content_only",
			"cropping": map[string]bool{
				"crop_tightly":         true,
				"remove_white_space":   true,
				"natural_boundaries":   true,
				"professional_framing": true,
			},
		},
		QualityStandards: map[string]interface{}{
			"lighting": map[string]bool{
				"consistent_across_elements": true,
				"natural_light_direction":    true,
				"harmonious_shadows":         true,
				"unified_color_temperature":  true,
			},
			"integration": map[string]bool{
				"seamless_blending":   true,
				"cohesive_style":      true,
				"natural_composition": true,
				"professional_finish": true,
			},
			"resolution": "maintain_or_enhance",
			"clarity":    "maximum_detail_retention",
		},
		StylePreservation: map[string]bool{
			"maintain_artistic_intent":         true,
			"preserve_core_composition":        true,
			"respect_visual_hierarchy":         true,
			"enhance_without_changing_concept": true,
		},
	}
}

// ClassifyPrompt maps a free-form prompt to an enhancement category. The
// categories are checked in a fixed order and the first match wins, so
// classification is deterministic.
func ClassifyPrompt(prompt string) string {
	p := strings.ToLower(prompt)
	contains := func(terms ...string) bool {
		for _, term := range terms {
			if strings.Contains(p, term) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("sketch", "rough", "polish"):
		return CategorySketch
	case contains("photorealistic", "realistic", "photograph"):
		return CategoryPhotorealistic
	case contains("digital art", "artistic", "vibrant"):
		return CategoryDigitalArt
	case contains("arrow", "instruction", "annotation"):
		return CategoryInstruction
	default:
		return CategoryGeneral
	}
}

// categoryDirections maps each category to its style direction and
// requirement tags.
var categoryDirections = map[string]struct {
	style        string
	requirements []string
}{
	CategorySketch:         {"refined_artwork", []string{"add_details", "enhance_lines", "professional_finish"}},
	CategoryPhotorealistic: {"photographic_quality", []string{"realistic_textures", "natural_lighting", "atmospheric_effects"}},
	CategoryDigitalArt:     {"modern_digital_art", []string{"vibrant_colors", "smooth_gradients", "creative_effects"}},
	CategoryInstruction:    {"directed_modification", []string{"follow_visual_instructions", "interpret_arrows", "apply_annotations"}},
	CategoryGeneral:        {"professional_quality", nil},
}

// BuildInstructions produces the canonical serialized instruction payload.
//
// An empty prompt yields the baseline schema. A prompt that already parses
// as a JSON object is passed through unchanged. Anything else is classified
// and merged into the baseline.
func BuildInstructions(customPrompt string) string {
	customPrompt = strings.TrimSpace(customPrompt)
	if customPrompt == "" {
		return serializeSchema(baselineSchema())
	}

	// Pre-built structured instructions pass through untouched.
	var probe map[string]interface{}
	if err := json.Unmarshal([]byte(customPrompt), &probe); err == nil {
		return customPrompt
	}

	category := ClassifyPrompt(customPrompt)
	direction := categoryDirections[category]

	schema := baselineSchema()
	schema.EnhancementType = category
	schema.StyleDirection = direction.style
	schema.CustomRequirements = direction.requirements
	schema.OriginalPromptIntent = customPrompt
	schema.ProcessingPriority = []string{
		"understand_visual_instructions",
		"apply_style_transformation",
		"ensure_quality_standards",
		"remove_instructional_elements",
	}
	return serializeSchema(schema)
}

func serializeSchema(schema *InstructionSchema) string {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		// The schema is built from plain maps and strings; marshaling
		// cannot fail in practice.
		return "{}"
	}
	return string(data)
}
