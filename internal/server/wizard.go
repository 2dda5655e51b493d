package server

import (
	"context"
	"net/http"
	"strings"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/endpoints"
	"healthquote-funnel/internal/wizard"

	"github.com/gin-gonic/gin"
)

type wizardView struct {
	layout
	FormType    string
	Action      string
	Step        int
	StepCount   int
	Progress    int
	Heading     string
	Subtitle    string
	Fields      []fieldView
	SubmitError string
	IsFirst     bool
	IsLast      bool
}

type fieldView struct {
	Name        string
	Label       string
	Control     string
	Placeholder string
	Value       string
	Checked     bool
	Selected    map[string]bool
	Options     []wizard.Option
	Error       string
	ShowIf      string
	Hidden      bool
	ReadOnly    bool
	GroupLabel  string
}

// wizardResponse is the JSON rendition of a step, returned when the client asks for JSON.
type wizardResponse struct {
	Success  bool            `json:"success"`
	FormType string          `json:"formType"`
	Step     int             `json:"step"`
	Route    string          `json:"route"`
	Redirect string          `json:"redirect,omitempty"`
	Errors   wizard.ErrorMap `json:"errors"`
	Data     wizard.Record   `json:"formData"`
}

func wantsJSON(c *gin.Context) bool {
	return c.Query("format") == "json" || strings.Contains(c.GetHeader("Accept"), "application/json")
}

func (s *Server) formState(ctx context.Context, c *gin.Context, v *wizard.Variant) *wizard.FormState {
	state := wizard.NewFormState(v, s.deps.Cache, c.GetString(sessionKey), s.log)
	state.Initialize(ctx)
	return state
}

// showWizard renders step k. The first visit of a session captures campaign, term and zip from
// the landing URL, and every step view makes sure an arrival is registered.
func (s *Server) showWizard(c *gin.Context, v *wizard.Variant, step int) {
	ctx := c.Request.Context()
	state := s.formState(ctx, c, v)

	campaign := firstQuery(c, "cid", "campaign")
	term := firstQuery(c, "kw", "term")
	zip := c.Query("zip")
	if state.CaptureTracking(ctx, campaign, term, zip) {
		if zip != "" {
			wizard.AutofillLocation(ctx, state, s.locator())
		}
		state.Persist(ctx)
	}

	s.trackArrival(c, v, state)

	nav := wizard.NewNavigator(state, step, s.submitter)
	if wantsJSON(c) {
		c.JSON(http.StatusOK, s.wizardJSON(state, nav.Step(), ""))
		return
	}
	c.HTML(http.StatusOK, "wizard", s.wizardView(state, nav.Step()))
}

func (s *Server) trackArrival(c *gin.Context, v *wizard.Variant, state *wizard.FormState) {
	if s.tracker == nil {
		return
	}
	rec := state.Record()
	s.tracker.Track(c.Request.Context(), state.SessionID(), v, wizard.ArrivalRequest{
		FormType:   v.FormType,
		Campaign:   rec.String("campaign"),
		Term:       rec.String("term"),
		Referrer:   c.Request.Referer(),
		LandingURL: s.cfg.Server.BaseURL + c.Request.URL.RequestURI(),
		IPAddress:  endpoints.ClientIP(c.Request),
		UserAgent:  c.Request.UserAgent(),
	})
}

// postWizard applies the posted fields of step k, then moves back or forward per the action.
func (s *Server) postWizard(c *gin.Context, v *wizard.Variant, step int) {
	start := s.now()
	ctx := c.Request.Context()
	state := s.formState(ctx, c, v)

	if err := c.Request.ParseForm(); err != nil {
		s.wizardError(c, apperrors.NewValidationFailedError(err.Error()))
		return
	}

	updates, err := stepUpdates(v, step, c.Request.PostForm)
	if err != nil {
		s.wizardError(c, apperrors.NewValidationFailedError(err.Error()))
		return
	}
	if token := c.PostForm("leadid_token"); token != "" {
		updates["jornaya_id"] = token
	}

	oldZip := state.Record().String("zip")
	if err := state.UpdateFields(updates); err != nil {
		s.wizardError(c, apperrors.NewValidationFailedError(err.Error()))
		return
	}
	if newZip := state.Record().String("zip"); newZip != oldZip && len(newZip) == 5 {
		wizard.AutofillLocation(ctx, state, s.locator())
	}

	nav := wizard.NewNavigator(state, step, s.submitter)
	var t wizard.Transition
	if c.PostForm("action") == "back" {
		t = nav.Retreat()
	} else if nav.IsLastStep() && s.submitter == nil {
		state.SetErrors(wizard.ErrorMap{wizard.SubmitErrorKey: "Submission is unavailable. Please try again later."})
		t = wizard.Transition{From: step, To: step, Route: nav.Route(), Blocked: true}
	} else {
		t, err = nav.Advance(ctx)
		if err != nil {
			status, msg := endpoints.Describe(err, "An error occurred. Please try again.")
			state.SetErrors(wizard.ErrorMap{wizard.SubmitErrorKey: msg})
			if wantsJSON(c) {
				state.Persist(ctx)
				resp := s.wizardJSON(state, step, "")
				resp.Success = false
				c.JSON(status, resp)
				return
			}
		}
	}

	if !t.Submitted {
		state.Persist(ctx)
	}
	s.deps.Observability.RecordStepDuration(ctx, string(v.FormType), step, s.now().Sub(start))

	if wantsJSON(c) {
		status := http.StatusOK
		if t.Blocked {
			status = http.StatusUnprocessableEntity
		}
		resp := s.wizardJSON(state, t.To, t.Redirect)
		resp.Success = !t.Blocked
		c.JSON(status, resp)
		return
	}

	switch {
	case t.Submitted:
		c.Redirect(http.StatusSeeOther, t.Redirect)
	case t.Blocked:
		c.HTML(http.StatusOK, "wizard", s.wizardView(state, t.To))
	default:
		c.Redirect(http.StatusSeeOther, t.Route)
	}
}

func (s *Server) wizardError(c *gin.Context, err error) {
	status, msg := endpoints.Describe(err, "Invalid form submission")
	if wantsJSON(c) {
		endpoints.Fail(c, err, msg)
		return
	}
	c.String(status, msg)
}

// stepUpdates converts the posted values for the inputs on step k. Inputs hidden behind an
// unchecked toggle still post their last value, which is kept as entered.
func stepUpdates(v *wizard.Variant, k int, form map[string][]string) (map[string]interface{}, error) {
	st, ok := v.Step(k)
	if !ok {
		return map[string]interface{}{}, nil
	}
	updates := make(map[string]interface{}, len(st.Fields))
	for _, f := range st.Fields {
		if f.ReadOnly {
			continue
		}
		kind, _ := v.Kind(f.Name)
		values, posted := form[f.Name]
		if !posted && kind == wizard.KindString {
			continue
		}
		val, err := wizard.ParseFormValue(kind, values)
		if err != nil {
			return nil, err
		}
		updates[f.Name] = val
	}
	return updates, nil
}

func (s *Server) wizardView(state *wizard.FormState, k int) wizardView {
	v := state.Variant()
	st, _ := v.Step(k)
	rec := state.Record()
	errs := state.Errors()
	now := s.now()

	view := wizardView{
		layout:      s.layout(st.Title+" | "+v.FormType.Label()+" Quote", st.Subtitle, v.Route(k)),
		FormType:    string(v.FormType),
		Action:      v.Route(k),
		Step:        k,
		StepCount:   v.StepCount(),
		Progress:    k * 100 / v.StepCount(),
		Heading:     st.Heading,
		Subtitle:    st.Subtitle,
		SubmitError: errs[wizard.SubmitErrorKey],
		IsFirst:     k == 1,
		IsLast:      k == v.StepCount(),
	}
	view.NoIndex = true
	view.JornayaURL = jornayaURL(s.cfg.Jornaya.CampaignID)

	group := ""
	for _, f := range st.Fields {
		fv := fieldView{
			Name:        f.Name,
			Label:       f.Label,
			Control:     string(f.Control),
			Placeholder: f.Placeholder,
			Value:       rec.String(f.Name),
			Checked:     rec.Bool(f.Name),
			Options:     f.Options(rec, now),
			Error:       errs[f.Name],
			ShowIf:      f.ShowIf,
			Hidden:      f.ShowIf != "" && !rec.Bool(f.ShowIf),
			ReadOnly:    f.ReadOnly,
		}
		if f.Control == wizard.ControlCheckboxGroup {
			fv.Selected = make(map[string]bool)
			for _, item := range rec.List(f.Name) {
				fv.Selected[item] = true
			}
		}
		if f.Control == wizard.ControlYesNo {
			fv.Value = "false"
			if fv.Checked {
				fv.Value = "true"
			}
		}
		if f.Group != group {
			fv.GroupLabel = f.Group
			group = f.Group
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

func (s *Server) wizardJSON(state *wizard.FormState, k int, redirect string) wizardResponse {
	v := state.Variant()
	return wizardResponse{
		Success:  true,
		FormType: string(v.FormType),
		Step:     k,
		Route:    v.Route(k),
		Redirect: redirect,
		Errors:   state.Errors(),
		Data:     state.Record(),
	}
}

// locator keeps a missing geocode handler from becoming a non-nil interface.
func (s *Server) locator() wizard.LocationLookup {
	if s.deps.Geocode == nil {
		return nil
	}
	return s.deps.Geocode
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}
