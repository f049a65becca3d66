package chat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rajshekhar/folio/internal/domain/portfolio"
)

func TestBuildSystemPromptFallbacks(t *testing.T) {
	t.Parallel()

	prompt := BuildSystemPrompt(Grounding{Owner: testOwner})

	require.Contains(t, prompt, "About Raj:\n- Full-Stack Developer & Data Engineer")
	require.Contains(t, prompt, "- Backend: Java, Python, Spring Boot, Django, FastAPI")
	require.Contains(t, prompt, "- Task Manager Dashboard (Full-stack with Django)")
	require.Contains(t, prompt, "- Full-Stack Developer (2023-Present)")
	require.Contains(t, prompt, "Contact:\n- Email: raj@example.com\n- Location: Bangalore, India")
	require.True(t, strings.HasSuffix(prompt, "- Use emojis sparingly and appropriately"))
}

func TestBuildSystemPromptFromContent(t *testing.T) {
	t.Parallel()

	projects := make([]portfolio.Project, 0, 8)
	for i := 1; i <= 8; i++ {
		projects = append(projects, portfolio.Project{Title: fmt.Sprintf("P%d", i), Technologies: portfolio.StringList{"Go"}})
	}
	experience := make([]portfolio.Experience, 0, 7)
	for i := 1; i <= 7; i++ {
		experience = append(experience, portfolio.Experience{Position: "Engineer", Company: fmt.Sprintf("C%d", i), Duration: "1 yr"})
	}

	prompt := BuildSystemPrompt(Grounding{
		Owner: testOwner,
		About: &portfolio.About{
			Name:      "Raj Shekhar Singh",
			Title:     "Data Engineer",
			Bio:       "One. Two. Three. Four. Five.",
			Email:     "hello@raj.dev",
			Expertise: "Spark • Kafka •",
		},
		Projects:   projects,
		Experience: experience,
	})

	require.Contains(t, prompt, "- Raj Shekhar Singh\n- Data Engineer\n- One. Two. Three.\n- Location: Bangalore, India\n- Email: hello@raj.dev")
	require.Contains(t, prompt, "Key Skills:\n- Spark\n- Kafka\n")
	require.Contains(t, prompt, "- P6: Go")
	require.NotContains(t, prompt, "- P7")
	require.Contains(t, prompt, "- Engineer at C5 (1 yr): Key role in software development")
	require.NotContains(t, prompt, "C6")
	require.Contains(t, prompt, "- Email: hello@raj.dev\n- Location: Bangalore, India\n- Always encourage")
}

func TestBuildSystemPromptEmptyListsAreLoaded(t *testing.T) {
	t.Parallel()

	prompt := BuildSystemPrompt(Grounding{Owner: testOwner, Projects: []portfolio.Project{}})
	require.Contains(t, prompt, "Projects:\n\nExperience:")
}

func TestSummarizeBio(t *testing.T) {
	t.Parallel()

	require.Equal(t, fallbackBio, summarizeBio("  "))
	require.Equal(t, "Short bio.", summarizeBio("Short bio."))
	require.Equal(t, "No period.", summarizeBio("No period"))
	require.Equal(t, "A. B. C.", summarizeBio("A. B. C. D."))
}
