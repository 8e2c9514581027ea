package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	appauth "github.com/bryanwahyu/scamshield/internal/application/auth"
	appreports "github.com/bryanwahyu/scamshield/internal/application/reports"
	appscans "github.com/bryanwahyu/scamshield/internal/application/scans"
	domain "github.com/bryanwahyu/scamshield/internal/domain/scans"
	"github.com/bryanwahyu/scamshield/internal/domain/users"
	"github.com/bryanwahyu/scamshield/internal/middleware"
)

// POST /register
// Body: {"name","email","password","confirm"}
func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Confirm  string `json:"confirm"`
	}
	if err := decodeJSON(w, req, &body); err != nil {
		return err
	}

	res, err := r.authSvc.Register(appauth.RegisterCommand{
		Name:     middleware.SanitizeString(body.Name),
		Email:    body.Email,
		Password: body.Password,
		Confirm:  body.Confirm,
	})
	if err != nil {
		return err
	}
	return r.reply(w, http.StatusCreated, res)
}

// POST /login
// Body: {"email","password"}
func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, req, &body); err != nil {
		return err
	}

	sess, err := r.authSvc.Login(appauth.LoginCommand{Email: body.Email, Password: body.Password})
	if err != nil {
		return err
	}
	return r.reply(w, http.StatusOK, sess)
}

// POST /logout. Sessions are stateless; the client drops its token.
func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) error {
	return r.reply(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// GET /me
func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) error {
	u, ok := middleware.GetUserFromContext(req.Context())
	if !ok {
		return users.ErrUnauthenticated
	}
	return r.reply(w, http.StatusOK, u)
}

// POST /predict
// Body: {"type": "SMS", "text": "..."}
func (r *Router) handlePredict(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := decodeJSON(w, req, &body); err != nil {
		return err
	}

	res, err := r.scansSvc.Predict(req.Context(), appscans.PredictCommand{
		UserID: middleware.UserIDFromContext(req.Context()),
		Type:   body.Type,
		Text:   body.Text,
	})
	if err != nil {
		return err
	}
	middleware.ObserveScan(string(res.RiskLevel), string(res.Source), res.Offline)
	return r.reply(w, http.StatusOK, res)
}

// GET /history?page=&page_size=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	page := middleware.QueryInt(q.Get("page"))
	size := middleware.QueryInt(q.Get("page_size"))

	list, err := r.scansSvc.History(req.Context(), middleware.UserIDFromContext(req.Context()), page, size)
	if err != nil {
		return err
	}
	return r.reply(w, http.StatusOK, list)
}

// GET /history/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id, err := scanIDParam(req)
	if err != nil {
		return err
	}

	scan, err := r.scansSvc.Get(req.Context(), middleware.UserIDFromContext(req.Context()), id)
	if err != nil {
		return err
	}
	return r.reply(w, http.StatusOK, scan)
}

// GET /history/{id}/errors
func (r *Router) handleFailures(w http.ResponseWriter, req *http.Request) error {
	id, err := scanIDParam(req)
	if err != nil {
		return err
	}

	list, err := r.scansSvc.Failures(req.Context(), middleware.UserIDFromContext(req.Context()), id)
	if err != nil {
		return err
	}
	return r.reply(w, http.StatusOK, list)
}

// GET /summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	days := middleware.QueryInt(req.URL.Query().Get("days"))

	summary, err := r.scansSvc.Summary(req.Context(), middleware.UserIDFromContext(req.Context()), days)
	if err != nil {
		return err
	}
	return r.reply(w, http.StatusOK, summary)
}

// POST /report
// JSON body, or multipart/form-data with an optional "evidence" file part.
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	cmd := appreports.SubmitCommand{UserID: middleware.UserIDFromContext(req.Context())}

	switch mediaType(req) {
	case "application/json":
		var body struct {
			ScamType    string `json:"scam_type"`
			Channel     string `json:"channel"`
			Description string `json:"description"`
			Contact     string `json:"contact"`
		}
		if err := decodeJSON(w, req, &body); err != nil {
			return err
		}
		cmd.ScamType, cmd.Channel, cmd.Description, cmd.Contact = body.ScamType, body.Channel, body.Description, body.Contact

	case "multipart/form-data":
		req.Body = http.MaxBytesReader(w, req.Body, appreports.MaxEvidenceBytes+1<<20)
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return err
			}
			return badRequest("invalid multipart body")
		}
		defer req.MultipartForm.RemoveAll()

		cmd.ScamType = req.FormValue("scam_type")
		cmd.Channel = req.FormValue("channel")
		cmd.Description = req.FormValue("description")
		cmd.Contact = req.FormValue("contact")

		file, header, err := req.FormFile("evidence")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return badRequest("invalid evidence part")
		default:
			defer file.Close()
			if err := middleware.ValidateFilename(header.Filename); err != nil {
				return badRequest("%s", err.Error())
			}
			cmd.Evidence = &appreports.Evidence{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Body:        file,
			}
		}

	default:
		return &httpError{status: http.StatusUnsupportedMediaType, msg: "use application/json or multipart/form-data"}
	}

	cmd.Description = middleware.SanitizeString(cmd.Description)
	cmd.Contact = middleware.SanitizeString(cmd.Contact)

	rep, err := r.reportsSvc.Submit(req.Context(), cmd)
	if err != nil {
		return err
	}
	middleware.IncrementReports(string(rep.Channel))
	return r.reply(w, http.StatusCreated, rep)
}

// GET /report?limit=20
func (r *Router) handleReportList(w http.ResponseWriter, req *http.Request) error {
	limit := middleware.QueryInt(req.URL.Query().Get("limit"))

	list, err := r.reportsSvc.List(req.Context(), middleware.UserIDFromContext(req.Context()), limit)
	if err != nil {
		return err
	}
	return r.reply(w, http.StatusOK, list)
}

func scanIDParam(req *http.Request) (domain.ScanID, error) {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateScanID(id); err != nil {
		return "", badRequest("%s", err.Error())
	}
	return domain.ScanID(id), nil
}
