package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rajshekhar/folio/internal/domain/contact"
	"github.com/rajshekhar/folio/internal/domain/portfolio"
	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

const (
	// maxContactBody leaves room for the JSON part and multipart framing on
	// top of the largest accepted attachment.
	maxContactBody  = contact.MaxAttachmentSize + 1<<20
	maxInterestBody = 1 << 16
	multipartMemory = 8 << 20
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListAbout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.fixtures.About))
}

func (s *Server) handlePrimaryAbout(w http.ResponseWriter, r *http.Request) {
	if len(s.fixtures.About) == 0 {
		httpError(w, http.StatusNotFound, "no about record")
		return
	}
	if s.primaryAsList {
		writeJSON(w, http.StatusOK, s.fixtures.About[:1])
		return
	}
	writeJSON(w, http.StatusOK, s.fixtures.About[0])
}

func (s *Server) handleAboutByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, a := range s.fixtures.About {
		if a.ID == id {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	httpError(w, http.StatusNotFound, fmt.Sprintf("about %q not found", id))
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.fixtures.Skills))
}

func (s *Server) handleSkillsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	skills := make([]portfolio.Skill, 0)
	for _, skill := range s.fixtures.Skills {
		if strings.EqualFold(skill.Category, category) {
			skills = append(skills, skill)
		}
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.fixtures.Projects))
}

func (s *Server) handleFeaturedProjects(w http.ResponseWriter, r *http.Request) {
	projects := make([]portfolio.Project, 0)
	for _, p := range s.fixtures.Projects {
		if p.Featured {
			projects = append(projects, p)
		}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleProjectsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	writeJSON(w, http.StatusOK, nonNil(portfolio.FilterProjects(s.fixtures.Projects, category)))
}

func (s *Server) handleExperience(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.fixtures.Experience))
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpError(w, http.StatusRequestEntityTooLarge, contact.MsgAttachmentTooLarge)
			return
		}
		httpError(w, http.StatusBadRequest, "invalid multipart body: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	raw := r.MultipartForm.Value[contactPart]
	if len(raw) == 0 {
		httpError(w, http.StatusBadRequest, `missing "contact" part`)
		return
	}
	var fields contact.Fields
	if err := json.Unmarshal([]byte(raw[0]), &fields); err != nil {
		httpError(w, http.StatusBadRequest, "invalid contact payload: "+err.Error())
		return
	}
	if errs := fields.Validate(); errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	upload, err := readUpload(r)
	if err != nil {
		var ve *folioerrors.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:  "validation failed",
				Fields: map[string]string{ve.Field: ve.Message},
			})
			return
		}
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	record := ContactRecord{
		ID:         len(s.contacts) + 1,
		Fields:     fields,
		Attachment: upload,
		ReceivedAt: s.now(),
	}
	s.contacts = append(s.contacts, record)
	s.mu.Unlock()

	logFields := []interface{}{"id", record.ID, "email", fields.Email, "subject", fields.Subject}
	if upload != nil {
		logFields = append(logFields, "attachment", upload.Name, "attachment_size", upload.Size)
	}
	s.logger.Info(r.Context(), "contact submission received", logFields...)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": record.ID, "status": "received"})
}

// readUpload returns the optional "file" part. The declared content type is
// not trusted; the stored type is sniffed from the bytes.
func readUpload(r *http.Request) (*UploadedFile, error) {
	files := r.MultipartForm.File[filePart]
	if len(files) == 0 {
		return nil, nil
	}
	header := files[0]
	if header.Size > contact.MaxAttachmentSize {
		return nil, folioerrors.NewValidationError("attachment", contact.MsgAttachmentTooLarge, nil)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open file part: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read file part: %w", err)
	}

	att := contact.NewAttachment(header.Filename, data)
	if err := contact.CheckAttachment(att); err != nil {
		return nil, err
	}
	return &UploadedFile{Name: att.Name, Size: att.Size, MIME: att.MIME, Data: data}, nil
}

func (s *Server) handleInterest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxInterestBody)
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if msg := contact.ValidateField(contact.FieldEmail, body.Email); msg != "" {
		writeFieldErrors(w, contact.FieldErrors{contact.FieldEmail: msg})
		return
	}

	s.mu.Lock()
	s.interests = append(s.interests, body.Email)
	s.mu.Unlock()

	s.logger.Info(r.Context(), "interest received", "email", body.Email)
	writeJSON(w, http.StatusCreated, map[string]string{"status": "received"})
}

// Multipart part names, matching the client.
const (
	contactPart = "contact"
	filePart    = "file"
)

func writeFieldErrors(w http.ResponseWriter, errs contact.FieldErrors) {
	fields := make(map[string]string, len(errs))
	for field, msg := range errs {
		fields[string(field)] = msg
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fields})
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
