package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/hanzawa-dev/gobbs/internal/csrf"
	"github.com/hanzawa-dev/gobbs/internal/domain"
	"github.com/hanzawa-dev/gobbs/internal/logger"
	"github.com/hanzawa-dev/gobbs/internal/session"
	"github.com/hanzawa-dev/gobbs/internal/validation"
)

const csrfFormField = "csrfToken"

// Index renders the list/submission page: recent-window posts, newest first,
// optionally keyword-filtered, with a fresh CSRF token for the post form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("list view started")

	sess := session.FromContext(r)
	if sess == nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	token, err := csrf.Issue(sess)
	if err != nil {
		logger.Log.Error("failed to issue CSRF token", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	bbsId := queryInt64(r, "bbsId", domain.DefaultBoardId)
	page := queryInt(r, "page", 0)
	keyword := r.URL.Query().Get("keyword")

	feed, err := h.posts.Recent(bbsId, page, keyword)
	if err != nil {
		logger.Log.Error("failed to load recent posts", "board", bbsId, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	board, err := h.boards.Get(bbsId)
	if err != nil {
		logger.Log.Error("failed to load board", "board", bbsId, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	nameMax, messageMax := validation.Limits()
	data := listPageData{
		Board:         board,
		BoardId:       bbsId,
		Posts:         h.renderPosts(feed.Posts),
		CurrentPage:   feed.CurrentPage,
		TotalPages:    feed.TotalPages,
		Keyword:       keyword,
		HasOlderPosts: feed.HasOlderPosts,
		CsrfToken:     token,
		MessageCode:   r.URL.Query().Get("msg"),
		Form: formEcho{
			Name:          r.URL.Query().Get("name"),
			Message:       r.URL.Query().Get("message"),
			NameError:     r.URL.Query().Get("err_name"),
			MessageError:  r.URL.Query().Get("err_message"),
			NameMaxLen:    nameMax,
			MessageMaxLen: messageMax,
		},
	}

	h.renderTemplate(w, "index.html", data)
	logger.Log.Info("list view finished")
}

// SubmitPost accepts a new post. Order matters: field validation first (no
// CSRF check, input echoed back), then the CSRF check, then the insert.
// Every outcome ends in a redirect back to the list.
func (h *Handler) SubmitPost(w http.ResponseWriter, r *http.Request) {
	logger.Log.Info("post submission started")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	name := r.PostFormValue("name")
	message := r.PostFormValue("message")
	page := formInt(r, "page", 0)

	if verrs := h.validator.Post(name, message); verrs != nil {
		logViolations(verrs, name, message)
		params := url.Values{}
		if kind, ok := verrs.Field("name"); ok {
			params.Set("err_name", string(kind))
		}
		if kind, ok := verrs.Field("message"); ok {
			params.Set("err_message", string(kind))
		}
		// echo the rejected input so the form re-renders pre-filled
		params.Set("name", name)
		params.Set("message", message)
		redirectToList(w, r, page, params)
		return
	}

	sess := session.FromContext(r)
	if sess == nil || !csrf.Validate(sess, r.PostFormValue(csrfFormField)) {
		redirectToList(w, r, page, url.Values{"msg": {msgCodeForbidden}})
		return
	}

	if _, err := h.posts.Create(name, message); err != nil {
		logger.Log.Error("unexpected error saving post", "error", err)
		redirectToList(w, r, page, url.Values{"msg": {msgCodeSystemError}})
		return
	}

	logger.Log.Info("post submission finished")
	redirectToList(w, r, page, nil)
}

// Good increments the good counter. Missing or bogus post ids are ignored;
// the response is a redirect to the list root either way.
func (h *Handler) Good(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.posts.Good)
}

// Bad is the counterpart for the bad counter.
func (h *Handler) Bad(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, h.posts.Bad)
}

func (h *Handler) vote(w http.ResponseWriter, r *http.Request, increment func(domain.PostId) error) {
	if err := r.ParseForm(); err == nil {
		if id, err := strconv.ParseInt(r.PostFormValue("postId"), 10, 64); err == nil {
			if err := increment(id); err != nil {
				logger.Log.Error("vote failed", "post", id, "error", err)
			}
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// History renders posts older than the rolling window. bbsId is required
// here, there is no default board for the history view.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	bbsIdStr := r.URL.Query().Get("bbsId")
	bbsId, err := strconv.ParseInt(bbsIdStr, 10, 64)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	page := queryInt(r, "page", 0)
	keyword := r.URL.Query().Get("keyword")

	feed, err := h.posts.History(bbsId, page, keyword)
	if err != nil {
		logger.Log.Error("failed to load post history", "board", bbsId, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	board, err := h.boards.Get(bbsId)
	if err != nil {
		logger.Log.Error("failed to load board", "board", bbsId, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := historyPageData{
		Board:       board,
		BoardId:     bbsId,
		Posts:       h.renderPosts(feed.Posts),
		CurrentPage: feed.CurrentPage,
		TotalPages:  feed.TotalPages,
		Keyword:     keyword,
	}
	h.renderTemplate(w, "history.html", data)
}

// logViolations keeps the two error categories distinguishable in the logs.
func logViolations(verrs *validation.PostViolations, name, message string) {
	for _, v := range verrs.Violations {
		value := name
		if v.Field == "message" {
			value = message
		}
		if v.Kind == validation.Empty {
			logger.Log.Error("required field missing", "field", v.Field)
		} else {
			logger.Log.Error("field over max length", "field", v.Field, "value", value)
		}
	}
}
