package services

import (
	"strings"

	"visapath/visa-advisor/internal/models"
)

const resumeExtractionTemplate = `Extract the following information from this resume. Return ONLY valid JSON with no markdown.

Resume text:
{resume_text}

Extract:
{
    "education": "highest degree (e.g., Master's Degree, Bachelor's Degree, PhD)",
    "field": "primary field/industry (e.g., Software Engineering, Data Science)",
    "experience_years": <number of years>,
    "current_status": "best guess of immigration status if mentioned, otherwise 'Unknown'",
    "country": "country of origin if mentioned, otherwise 'Unknown'",
    "achievements": "list notable achievements: publications, awards, patents, etc. If none, say 'None listed'",
    "has_offer": "yes or no - best guess based on resume",
    "job_details": "current or most recent company and role"
}

Be concise. If information is not found, use reasonable defaults.
Respond with a single JSON object only. No surrounding prose, no backticks, no code fences.`

const visaAnalysisTemplate = `You are an expert US immigration attorney. Analyze this candidate's profile and provide visa eligibility assessment.

Candidate Profile:
- Education: {education}
- Work Experience: {experience} years in {field}
- Current Status: {current_status}
- Has Job Offer: {has_offer}
- Job Details: {job_details}
- Special Achievements: {achievements}
- Country of Origin: {country}

Analyze eligibility for these visa categories:
1. H-1B (Specialty Occupation)
2. O-1A (Extraordinary Ability - Sciences/Business/Education)
3. O-1B (Extraordinary Ability - Arts/Entertainment)
4. EB-2 (Advanced Degree or Exceptional Ability)
5. EB-3 (Skilled Worker)
6. L-1 (Intracompany Transfer, if applicable)

For EACH visa type, provide:
- eligible: "yes" | "maybe" | "no"
- confidence: 1-10
- reasoning: detailed explanation (2-3 sentences)
- requirements_met: list of requirements they satisfy
- requirements_missing: list of requirements they don't meet
- next_steps: concrete actions they should take
- timeline: estimated processing time
- estimated_cost: filing fees + attorney fees range

Also provide:
- recommended_path: which visa to pursue first
- overall_assessment: 2-3 sentence summary
- risk_factors: potential issues to address

Respond with ONLY valid JSON. No markdown, no backticks, no additional text.

JSON structure:
{
  "visas": {
    "H1B": {
      "eligible": "yes|maybe|no",
      "confidence": 8,
      "reasoning": "...",
      "requirements_met": [],
      "requirements_missing": [],
      "next_steps": [],
      "timeline": "...",
      "estimated_cost": "..."
    }
  },
  "recommended_path": "...",
  "overall_assessment": "...",
  "risk_factors": []
}

Include one entry under "visas" for each category listed above, keyed H1B, O1A, O1B, EB2, EB3 and L1.`

// Profile defaults applied when a field is absent from the request.
const (
	DefaultEducation     = ""
	DefaultExperience    = ""
	DefaultField         = ""
	DefaultCurrentStatus = ""
	DefaultHasOffer      = "No"
	DefaultJobDetails    = "N/A"
	DefaultAchievements  = "None"
	DefaultCountry       = ""
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt creates prompt for resume field extraction
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return strings.NewReplacer("{resume_text}", resumeText).Replace(resumeExtractionTemplate)
}

// BuildVisaAnalysisPrompt creates prompt for visa eligibility analysis.
// Substitution is single pass, so profile text that itself contains
// placeholder tokens is left untouched.
func (pb *PromptBuilder) BuildVisaAnalysisPrompt(profile models.ProfileFields) string {
	return strings.NewReplacer(
		"{education}", models.Value(profile.Education, DefaultEducation),
		"{experience}", models.Value(profile.Experience, DefaultExperience),
		"{field}", models.Value(profile.Field, DefaultField),
		"{current_status}", models.Value(profile.CurrentStatus, DefaultCurrentStatus),
		"{has_offer}", models.Value(profile.HasOffer, DefaultHasOffer),
		"{job_details}", models.Value(profile.JobDetails, DefaultJobDetails),
		"{achievements}", models.Value(profile.Achievements, DefaultAchievements),
		"{country}", models.Value(profile.Country, DefaultCountry),
	).Replace(visaAnalysisTemplate)
}
