// Package generator orchestrates the two concurrent generation calls that
// turn a profile and a job description into application materials: a
// best-effort grounded insights call and a required schema-constrained
// materials call.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "embed"

	"github.com/vj-vijeta/job-hunt-assistant/internal/ai"
	"github.com/vj-vijeta/job-hunt-assistant/internal/profile"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

//go:embed materials_prompt.md
var materialsPromptTemplate string

//go:embed insights_prompt.md
var insightsPromptTemplate string

// ErrGenerationFailed marks a fatal failure of the required materials
// call. No partial GeneratedData ever accompanies it.
var ErrGenerationFailed = errors.New("generation failed")

// Request carries the inputs of one generation invocation.
type Request struct {
	UserInfo       profile.UserInfo
	Experiences    []*profile.Experience
	CvText         string
	JobDescription string
	Style          profile.DocumentStyle
	Language       profile.LanguageCode
}

type structuredGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

type Orchestrator struct {
	grounded   ai.GroundedGenerator
	structured structuredGenerator
	logger     *zap.Logger
}

func New(grounded ai.GroundedGenerator, structured structuredGenerator, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		grounded:   grounded,
		structured: structured,
		logger:     logger,
	}
}

// Generate issues the insights and materials calls concurrently and joins
// them. An insights failure degrades to nil CompanyInsights; a materials
// failure is fatal and surfaces as ErrGenerationFailed.
func (o *Orchestrator) Generate(ctx context.Context, req *Request) (*GeneratedData, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrGenerationFailed)
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, fmt.Errorf("%w: job description must not be empty", ErrGenerationFailed)
	}
	if err := profile.ValidateStyle(req.Style); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	language, err := profile.LanguageName(req.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	materialsPrompt, err := buildMaterialsPrompt(req, language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	var (
		wg       sync.WaitGroup
		insights *CompanyInsights
		rawMain  string
		mainErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		insights = o.fetchInsights(ctx, req.JobDescription)
	}()
	go func() {
		defer wg.Done()
		rawMain, mainErr = o.structured.GenerateJSON(ctx, materialsPrompt, materialsSchema)
	}()
	wg.Wait()

	if mainErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, mainErr)
	}

	var data GeneratedData
	if err := json.Unmarshal([]byte(rawMain), &data); err != nil {
		return nil, fmt.Errorf("%w: parse materials response: %w", ErrGenerationFailed, err)
	}

	if data.Resume == nil || strings.TrimSpace(data.CoverLetter) == "" {
		return nil, fmt.Errorf("%w: materials response is incomplete", ErrGenerationFailed)
	}

	data.CompanyInsights = insights

	return &data, nil
}

// fetchInsights never fails the generation: any error resolves to nil.
func (o *Orchestrator) fetchInsights(ctx context.Context, jobDescription string) *CompanyInsights {
	prompt := strings.ReplaceAll(insightsPromptTemplate, "{{JOB_DESCRIPTION}}", jobDescription)

	result, err := o.grounded.GenerateGrounded(ctx, prompt)
	if err != nil {
		o.logger.Warn("fetching company insights", zap.Error(err))
		return nil
	}

	sources := result.Sources
	if sources == nil {
		sources = []ai.SourceRef{}
	}

	return &CompanyInsights{Text: result.Text, Sources: sources}
}

func buildMaterialsPrompt(req *Request, language string) (string, error) {
	experiences := make([]map[string]string, 0, len(req.Experiences))
	for _, exp := range req.Experiences {
		if exp == nil {
			continue
		}
		// The experience ID is an internal handle, not profile content.
		experiences = append(experiences, map[string]string{
			"company":          exp.Company,
			"role":             exp.Role,
			"startDate":        exp.StartDate,
			"endDate":          exp.EndDate,
			"responsibilities": exp.Responsibilities,
		})
	}

	userInfoJSON, err := json.Marshal(req.UserInfo)
	if err != nil {
		return "", fmt.Errorf("marshal user info: %w", err)
	}

	experiencesJSON, err := json.Marshal(experiences)
	if err != nil {
		return "", fmt.Errorf("marshal experiences: %w", err)
	}

	profileBlock := fmt.Sprintf("User Info: %s\nWork Experience: %s\nFull CV Text (if provided, use as primary source): %s",
		userInfoJSON, experiencesJSON, req.CvText)

	prompt := strings.ReplaceAll(materialsPromptTemplate, "{{LANGUAGE}}", language)
	prompt = strings.ReplaceAll(prompt, "{{PROFILE}}", profileBlock)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", req.JobDescription)
	prompt = strings.ReplaceAll(prompt, "{{STYLE}}", string(req.Style))

	return prompt, nil
}

// materialsSchema is the contract of the required generation call: every
// resume and analysis field must be present.
var materialsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"resume": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":    {Type: genai.TypeString},
				"email":   {Type: genai.TypeString},
				"phone":   {Type: genai.TypeString},
				"website": {Type: genai.TypeString},
				"address": {Type: genai.TypeString},
				"summary": {Type: genai.TypeString},
				"experiences": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"role":    {Type: genai.TypeString},
							"company": {Type: genai.TypeString},
							"dates":   {Type: genai.TypeString},
							"description": {
								Type:        genai.TypeString,
								Description: "Achievements and responsibilities, separated by newline characters.",
							},
						},
						Required: []string{"role", "company", "dates", "description"},
					},
				},
				"skills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"education":      {Type: genai.TypeString},
				"certifications": {Type: genai.TypeString},
			},
			Required: []string{
				"name", "email", "phone", "website", "address", "summary",
				"experiences", "skills", "education", "certifications",
			},
		},
		"coverLetter": {Type: genai.TypeString},
		"jobMatchAnalysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"matchScore": {Type: genai.TypeInteger},
				"summary":    {Type: genai.TypeString},
				"strengths": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"weaknesses": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"matchScore", "summary", "strengths", "weaknesses"},
		},
	},
	Required: []string{"resume", "coverLetter", "jobMatchAnalysis"},
}
