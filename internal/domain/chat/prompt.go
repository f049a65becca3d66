package chat

import (
	"fmt"
	"strings"

	"github.com/rajshekhar/folio/internal/domain/portfolio"
)

const (
	maxPromptProjects    = 6
	maxPromptExperiences = 5
	maxBioSentences      = 3
)

// Grounding is the content snapshot the system prompt is built from. A nil
// About or a nil slice means that resource has not loaded, and the prompt
// falls back to built-in text for it.
type Grounding struct {
	Owner      portfolio.Owner
	About      *portfolio.About
	Projects   []portfolio.Project
	Experience []portfolio.Experience
}

// QuickAction is a canned prompt offered next to the input.
type QuickAction struct {
	Label   string
	Message string
}

// QuickActions returns the four canned prompts for the owner.
func QuickActions(owner portfolio.Owner) []QuickAction {
	name := ownerName(owner)
	return []QuickAction{
		{Label: "About " + name, Message: fmt.Sprintf("Tell me about %s's background and experience", name)},
		{Label: "Projects", Message: fmt.Sprintf("What projects has %s worked on?", name)},
		{Label: "Skills", Message: fmt.Sprintf("What are %s's technical skills?", name)},
		{Label: "Contact", Message: fmt.Sprintf("How can I contact %s?", name)},
	}
}

// Greeting is the seed message of every conversation.
func Greeting(owner portfolio.Owner) string {
	return fmt.Sprintf("👋 Hi! I'm %s's AI assistant. I can tell you about his projects, skills, experience, or how to contact him. What would you like to know?", ownerName(owner))
}

// BuildSystemPrompt renders the assistant instructions from g.
func BuildSystemPrompt(g Grounding) string {
	name := ownerName(g.Owner)
	email := firstNonEmpty(aboutField(g.About, func(a *portfolio.About) string { return a.Email }), g.Owner.Email)
	location := firstNonEmpty(aboutField(g.About, func(a *portfolio.About) string { return a.Location }), g.Owner.Location)

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s's AI assistant for his portfolio website. You are helpful, friendly, and knowledgeable about %s's background, skills, projects, and experience.\n\n", name, name)

	fmt.Fprintf(&b, "About %s:\n", name)
	if g.About != nil {
		a := g.About
		fmt.Fprintf(&b, "- %s\n", firstNonEmpty(a.Name, g.Owner.DisplayName()))
		fmt.Fprintf(&b, "- %s\n", firstNonEmpty(a.Title, g.Owner.Title, "Software Developer & Data Engineer"))
		fmt.Fprintf(&b, "- %s\n", summarizeBio(a.Bio))
		fmt.Fprintf(&b, "- Location: %s\n", location)
		fmt.Fprintf(&b, "- Email: %s\n", email)
	} else {
		b.WriteString(fallbackAbout)
	}
	b.WriteString("\n")

	b.WriteString("Key Skills:\n")
	if items := expertise(g.About); len(items) > 0 {
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	} else {
		b.WriteString(fallbackSkills)
	}
	b.WriteString("\n")

	b.WriteString("Projects:\n")
	if g.Projects != nil {
		for i, p := range g.Projects {
			if i == maxPromptProjects {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", p.Title, firstNonEmpty(p.Description, p.Technologies.String(), "A featured project"))
		}
	} else {
		b.WriteString(fallbackProjects)
	}
	b.WriteString("\n")

	b.WriteString("Experience:\n")
	if g.Experience != nil {
		for i, e := range g.Experience {
			if i == maxPromptExperiences {
				break
			}
			fmt.Fprintf(&b, "- %s at %s (%s): %s\n", e.Position, e.Company, e.Period(), firstNonEmpty(e.Description, "Key role in software development"))
		}
	} else {
		b.WriteString(fallbackExperience)
	}
	b.WriteString("\n")

	b.WriteString("Contact:\n")
	fmt.Fprintf(&b, "- Email: %s\n", email)
	fmt.Fprintf(&b, "- Location: %s\n", location)
	b.WriteString("- Always encourage using the contact form for detailed inquiries\n\n")

	b.WriteString("Guidelines:\n")
	b.WriteString("- Be conversational and friendly\n")
	fmt.Fprintf(&b, "- Provide accurate information about %s's background including his education and work experience\n", name)
	b.WriteString("- Encourage visitors to explore the portfolio sections\n")
	fmt.Fprintf(&b, "- If asked about something not related to %s's portfolio, politely redirect to relevant topics\n", name)
	b.WriteString("- Keep responses concise but informative\n")
	b.WriteString("- Use emojis sparingly and appropriately")
	return b.String()
}

const (
	fallbackAbout = `- Full-Stack Developer & Data Engineer with 3+ years of experience
- Specializes in Java, Python, React, and cloud technologies
- Expertise in building scalable web applications, data pipelines, and AI solutions
- Strong experience with Spring Boot, React, MongoDB, Apache Kafka, AI/ML frameworks
`
	fallbackSkills = `- Backend: Java, Python, Spring Boot, Django, FastAPI
- Frontend: React, JavaScript, HTML5, CSS3, Tailwind CSS
- Databases: MongoDB, MySQL, PostgreSQL
- Data Engineering: Apache Kafka, Apache Spark, Hadoop
- AI/ML: TensorFlow, PyTorch, LangChain, OpenAI
- Cloud: Google Cloud, AWS, Docker, Kubernetes
`
	fallbackProjects = `- Customer 360 Analytics Platform (React + Spring Boot)
- Task Manager Dashboard (Full-stack with Django)
- RAG-Powered AI Knowledge Assistant (LangChain + OpenAI)
- Credit Card Fraud Detection System (Python + ML)
`
	fallbackExperience = `- System Engineer (2021-2023): Worked on enterprise applications and system integration
- Full-Stack Developer (2023-Present): Building scalable web applications and AI solutions
`
	fallbackBio = "Passionate about technology and innovation, I specialize in building scalable applications and solving complex problems."
)

// summarizeBio keeps the first three sentences.
func summarizeBio(bio string) string {
	bio = strings.TrimSpace(bio)
	if bio == "" {
		return fallbackBio
	}
	sentences := strings.Split(bio, ". ")
	if len(sentences) > maxBioSentences {
		sentences = sentences[:maxBioSentences]
	}
	summary := strings.Join(sentences, ". ")
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

func expertise(a *portfolio.About) []string {
	if a == nil {
		return nil
	}
	return a.ExpertiseItems()
}

func aboutField(a *portfolio.About, get func(*portfolio.About) string) string {
	if a == nil {
		return ""
	}
	return get(a)
}

func ownerName(o portfolio.Owner) string {
	return firstNonEmpty(o.Name, o.FullName, "the owner")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
