package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rajshekhar/folio/internal/application/content"
	"github.com/rajshekhar/folio/internal/domain/contact"
	"github.com/rajshekhar/folio/internal/domain/portfolio"
	"github.com/rajshekhar/folio/internal/tui/components"
)

const (
	meterWidth     = 30
	skillNameWidth = 20
	maxStackChips  = 24
)

func (m Model) renderSection() string {
	s := m.styles.Current()
	var body string
	switch m.section {
	case SectionHome:
		body = m.renderHome(s)
	case SectionAbout:
		body = m.renderAbout(s)
	case SectionSkills:
		body = m.renderSkills(s)
	case SectionProjects:
		body = m.renderProjects(s)
	case SectionExperience:
		body = m.renderExperience(s)
	case SectionContact:
		body = m.renderContact(s)
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(body)
}

// resourceState returns placeholder text for a resource that cannot be shown
// yet, or "" once it has loaded.
func (m Model) resourceState(s Styles, key, label string) string {
	if !m.loaded {
		return s.Muted.Render(m.spinner.View() + " Loading " + label + "...")
	}
	if err := m.snapshot.Errs[key]; err != nil {
		return s.Error.Render("Failed to load " + label + ". Please try again later.")
	}
	return ""
}

func (m Model) renderHome(s Styles) string {
	name := m.deps.Owner.DisplayName()
	tagline := m.deps.Owner.Title
	if a := m.snapshot.About; a != nil {
		if a.Name != "" {
			name = a.Name
		}
		if a.Tagline != "" {
			tagline = a.Tagline
		}
	}

	lines := []string{
		"",
		s.Muted.Render("Hello, I'm"),
		s.Hero.Render(name),
		s.Body.Render("I'm a ") + s.Role.Render(m.typewriter.Text()) + s.Cursor.Render("▌"),
	}
	if tagline != "" {
		lines = append(lines, "", s.Body.Width(m.contentWidth()).Render(tagline))
	}
	if m.deps.Owner.Location != "" {
		lines = append(lines, s.Muted.Render("📍 "+m.deps.Owner.Location))
	}

	if !m.loaded {
		lines = append(lines, "", s.Muted.Render(m.spinner.View()+" Loading portfolio..."))
	} else if len(m.snapshot.Skills) > 0 {
		lines = append(lines, s.Heading.Render("Tech Stack"), m.renderChips(s, skillNames(m.snapshot.Skills), -1))
	}

	lines = append(lines, "",
		s.Accent.Render("tab")+s.Muted.Render(" explore sections · ")+
			s.Accent.Render("ctrl+o")+s.Muted.Render(" chat with my assistant · ")+
			s.Accent.Render("ctrl+t")+s.Muted.Render(" switch theme"))
	return strings.Join(lines, "\n")
}

func (m Model) renderAbout(s Styles) string {
	lines := []string{s.Heading.Render("About Me")}
	if state := m.resourceState(s, content.KeyAbout, "about information"); state != "" {
		return strings.Join(append(lines, state), "\n")
	}
	a := m.snapshot.About
	if a == nil {
		return strings.Join(append(lines, s.Muted.Render("No about information available yet.")), "\n")
	}

	width := m.contentWidth()
	lines = append(lines, s.Title.Render(a.Name))
	if a.Title != "" {
		lines = append(lines, s.Role.Render(a.Title))
	}
	if a.Tagline != "" {
		lines = append(lines, s.Accent.Width(width).Render(a.Tagline))
	}
	if a.Bio != "" {
		lines = append(lines, "", s.Body.Width(width).Render(a.Bio))
	}
	if items := a.ExpertiseItems(); len(items) > 0 {
		lines = append(lines, s.Heading.Render("Expertise"))
		for _, item := range items {
			lines = append(lines, s.Body.Width(width).Render("• "+item))
		}
	}
	if a.CurrentFocus != "" {
		lines = append(lines, "", s.Label.Render("Focus")+s.Body.Render(a.CurrentFocus))
	}
	if a.Availability != "" {
		lines = append(lines, s.Label.Render("Status")+s.Accent.Render(a.Availability))
	}

	lines = append(lines, "")
	for _, row := range [][2]string{
		{"Email", a.Email},
		{"Phone", a.Phone},
		{"Location", a.Location},
		{"GitHub", a.GithubURL},
		{"LinkedIn", a.LinkedinURL},
		{"Resume", a.ResumeURL},
	} {
		if row[1] == "" {
			continue
		}
		value := s.Body.Render(row[1])
		if strings.HasPrefix(row[1], "http") {
			value = s.Link.Render(row[1])
		}
		lines = append(lines, s.Label.Render(row[0])+value)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSkills(s Styles) string {
	lines := []string{s.Heading.Render("Skills & Expertise")}
	if state := m.resourceState(s, content.KeySkills, "skills"); state != "" {
		return strings.Join(append(lines, state), "\n")
	}
	groups := portfolio.GroupSkills(m.snapshot.Skills)
	if len(groups) == 0 {
		return strings.Join(append(lines, s.Muted.Render("No skills listed yet.")), "\n")
	}

	nameStyle := s.Body.Width(skillNameWidth)
	for _, group := range groups {
		lines = append(lines, s.Role.Render(group.Category))
		for _, skill := range group.Skills {
			fill := string(s.Palette.Primary)
			if skill.Color != "" {
				fill = skill.Color
			}
			lines = append(lines, fmt.Sprintf("%s %s %s",
				nameStyle.Render(skill.Name),
				components.Meter(skill.Proficiency, meterWidth, fill),
				s.Muted.Render(fmt.Sprintf("%3d%%", skill.Proficiency))))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderProjects(s Styles) string {
	lines := []string{s.Heading.Render("Featured Projects")}
	if state := m.resourceState(s, content.KeyProjects, "projects"); state != "" {
		return strings.Join(append(lines, state), "\n")
	}

	category := m.currentCategory()
	lines = append(lines, m.renderChips(s, m.categories, m.category)+"  "+s.Muted.Render("←/→ filter"), "")

	filtered := portfolio.FilterProjects(m.snapshot.Projects, category)
	if len(filtered) == 0 {
		return strings.Join(append(lines, s.Muted.Render("No projects found in this category.")), "\n")
	}

	shown := filtered
	if len(shown) > m.projectLimit {
		shown = shown[:m.projectLimit]
	}
	style := s.Card
	style.Width = m.contentWidth()
	for _, p := range shown {
		lines = append(lines, components.NewCard(projectCard(p), style).View())
	}
	if rest := len(filtered) - len(shown); rest > 0 {
		lines = append(lines, s.Accent.Render("m")+s.Muted.Render(fmt.Sprintf(" show more projects (%d remaining)", rest)))
	}
	return strings.Join(lines, "\n")
}

func projectCard(p portfolio.Project) components.CardData {
	data := components.CardData{
		Title:       p.Title,
		Description: p.Description,
		Bullets:     p.Highlights,
		Tags:        p.Technologies,
	}
	var meta []string
	if p.Category != "" {
		meta = append(meta, p.Category)
	}
	if p.CompletedDate != "" {
		meta = append(meta, p.CompletedDate)
	}
	data.Subtitle = strings.Join(meta, " · ")
	if p.Featured {
		data.Badge = "★ Featured"
	}
	if p.GithubLink != "" {
		data.Footer = append(data.Footer, "Code  "+p.GithubLink)
	}
	if p.LiveLink != "" {
		data.Footer = append(data.Footer, "Live  "+p.LiveLink)
	}
	return data
}

func (m Model) renderExperience(s Styles) string {
	lines := []string{s.Heading.Render("Experience")}
	if state := m.resourceState(s, content.KeyExperience, "experience"); state != "" {
		return strings.Join(append(lines, state), "\n")
	}
	if len(m.snapshot.Experience) == 0 {
		return strings.Join(append(lines, s.Muted.Render("No experience listed yet.")), "\n")
	}

	style := s.Card
	style.Width = m.contentWidth()
	for _, e := range m.snapshot.Experience {
		data := components.CardData{
			Title:       e.Position,
			Badge:       e.Period(),
			Description: e.Description,
			Bullets:     e.Achievements,
		}
		subtitle := e.Company
		if e.Location != "" {
			subtitle += " · " + e.Location
		}
		data.Subtitle = subtitle
		if e.Current {
			data.Badge += " • Current"
		}
		lines = append(lines, components.NewCard(data, style).View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderContact(s Styles) string {
	lines := []string{s.Heading.Render("Get In Touch")}

	email := m.deps.Owner.Email
	phone := m.deps.Owner.Phone
	location := m.deps.Owner.Location
	if a := m.snapshot.About; a != nil {
		email = firstNonEmpty(a.Email, email)
		phone = firstNonEmpty(a.Phone, phone)
		location = firstNonEmpty(a.Location, location)
	}
	if email != "" {
		lines = append(lines, s.Label.Render("Email")+s.Link.Render(email)+"  "+s.Muted.Render("ctrl+y copy"))
	}
	if phone != "" {
		lines = append(lines, s.Label.Render("Phone")+s.Body.Render(phone))
	}
	if location != "" {
		lines = append(lines, s.Label.Render("Location")+s.Body.Render(location))
	}

	step := m.wizard.Step()
	titles := make([]string, 0, int(contact.LastStep))
	for st := contact.FirstStep; st <= contact.LastStep; st++ {
		titles = append(titles, st.Title())
	}
	lines = append(lines, "", components.NewStepIndicator(titles, int(step)).View(s.Steps), "")

	for _, field := range step.Fields() {
		lines = append(lines, m.renderField(s, field))
	}
	if step == contact.StepMessage {
		lines = append(lines, m.renderAttachment(s))
	}

	back := components.Button{Label: "Back esc", Disabled: step == contact.FirstStep}
	var next components.Button
	switch {
	case m.wizard.Submitting():
		next = components.Button{Label: "Sending...", Disabled: true}
	case step == contact.LastStep:
		next = components.Button{Label: "Send Message ctrl+s", Disabled: !m.wizard.CanSubmit(), Focus: m.wizard.CanSubmit()}
	default:
		next = components.Button{Label: "Next enter"}
	}
	lines = append(lines, "", back.View(s.Button)+"  "+next.View(s.Button))

	lines = append(lines, s.Heading.Render("Quick Contact"),
		s.Muted.Render("Leave your email and I'll reach out."),
		m.inputBox(s, inputInterest, m.form.interest.View()))
	if msg := m.interest.Error(); msg != "" {
		lines = append(lines, s.Error.Render(msg))
	}
	label := "Notify Me enter"
	if m.interest.Submitting() {
		label = "Sending..."
	}
	lines = append(lines, components.Button{Label: label, Disabled: m.interest.Submitting()}.View(s.Button))
	return strings.Join(lines, "\n")
}

func (m Model) renderField(s Styles, field contact.Field) string {
	var (
		in   formInput
		view string
	)
	switch field {
	case contact.FieldName:
		in, view = inputName, m.form.name.View()
	case contact.FieldEmail:
		in, view = inputEmail, m.form.email.View()
	case contact.FieldSubject:
		in, view = inputSubject, m.form.subject.View()
	case contact.FieldMessage:
		in, view = inputMessage, m.form.message.View()
	}
	lines := []string{s.Body.Bold(true).Render(field.Label() + " *"), m.inputBox(s, in, view)}
	if m.wizard.Touched(field) {
		if msg := m.wizard.Error(field); msg != "" {
			lines = append(lines, s.Error.Render(msg))
		}
	}
	if field == contact.FieldMessage {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("%d/1000", len([]rune(m.wizard.Value(field))))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAttachment(s Styles) string {
	lines := []string{s.Body.Bold(true).Render("Attachment (optional)")}
	if a := m.wizard.Attachment(); a != nil {
		lines = append(lines, s.Accent.Render(fmt.Sprintf("📎 %s (%s)", a.Name, a.HumanSize()))+"  "+s.Muted.Render("ctrl+x remove"))
	} else {
		lines = append(lines, m.inputBox(s, inputAttachment, m.form.attachment.View()),
			s.Muted.Render("Images, PDF, text or Word documents up to 5MB"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) inputBox(s Styles, in formInput, view string) string {
	if m.form.focus == in {
		return s.Focused.Render(view)
	}
	return s.Input.Render(view)
}

func (m Model) renderChips(s Styles, labels []string, active int) string {
	chips := make([]string, 0, len(labels))
	for i, label := range labels {
		if active < 0 && i >= maxStackChips {
			break
		}
		if i == active {
			chips = append(chips, s.ChipOn.Render(label))
			continue
		}
		chips = append(chips, s.Chip.Render(label))
	}
	return lipgloss.NewStyle().Width(m.contentWidth()).Render(strings.Join(chips, " "))
}

func (m Model) currentCategory() string {
	if m.category < 0 || m.category >= len(m.categories) {
		return portfolio.AllCategories
	}
	return m.categories[m.category]
}

func (m Model) contentWidth() int {
	return min(96, max(30, m.width-6))
}

func skillNames(skills []portfolio.Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
