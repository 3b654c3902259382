package recommend

import (
	"fmt"
	"strings"
)

// coursePrompt asks the model for 8 courses: 3 beginner, 3 intermediate,
// 2 advanced, returned as a single JSON object.
func coursePrompt(q Query) string {
	skills := q.Skills
	if strings.TrimSpace(skills) == "" {
		skills = "Not specified"
	}
	goals := q.Goals
	if strings.TrimSpace(goals) == "" {
		goals = "Not specified"
	}

	return fmt.Sprintf(`Generate personalized course recommendations for:
- Interests: %s
- Current Skills: %s
- Career Goals: %s

Generate EXACTLY 8 high-quality courses with the following distribution:
- 3 Beginner level courses
- 3 Intermediate level courses
- 2 Advanced level courses

Return as JSON:
{
    "courses": [
        {
            "title": "Specific course title",
            "platform": "Coursera/Udemy/edX/LinkedIn Learning/etc",
            "instructor": "Instructor name",
            "duration": "Duration (e.g., '8 weeks', '40 hours')",
            "difficulty": "Beginner/Intermediate/Advanced",
            "rating": "Rating (4.0-5.0)",
            "price": "Price (Free, $49/month, $99, etc.)",
            "description": "2-sentence description",
            "skills_gained": ["skill1", "skill2", "skill3"],
            "url": "Course URL",
            "level": "beginner/intermediate/advanced",
            "certification": "Yes/No"
        }
    ]
}

IMPORTANT REQUIREMENTS:
1. Use REAL, EXISTING courses from reputable platforms
2. Ensure variety in platforms and instructors
3. Make descriptions specific and compelling
4. Provide accurate pricing and realistic ratings
5. Distribute difficulty levels appropriately
6. Ensure URLs are realistic (don't use placeholder URLs)

Return ONLY the JSON object, no additional text or explanation.`,
		q.Interests, skills, goals)
}

// roadmapPrompt asks the model for an 8-step learning roadmap for a subject.
func roadmapPrompt(subject string) string {
	return fmt.Sprintf(`Create a comprehensive learning roadmap for: %s

Generate exactly 8 progressive learning steps. Return as JSON:
{
    "subject": "%s",
    "overview": "2-sentence overview of the learning journey",
    "total_duration": "Total estimated time (e.g., '6-12 months')",
    "prerequisites": ["prerequisite1", "prerequisite2"],
    "learning_path": [
        {
            "step": 1,
            "title": "Step title",
            "description": "What will be learned",
            "duration": "2-4 weeks",
            "difficulty": "Beginner/Intermediate/Advanced",
            "topics": ["topic1", "topic2", "topic3"],
            "milestone": "What you'll achieve"
        }
    ],
    "career_outcomes": ["Job role 1", "Job role 2", "Job role 3"],
    "certifications": ["Certification 1", "Certification 2"],
    "salary_range": "Expected salary range",
    "industry_demand": "Market demand information"
}

Ensure 8 steps with logical progression. Return ONLY JSON.`,
		subject, subject)
}
