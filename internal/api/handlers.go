package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ev-chart-station/internal/conflict"
	"ev-chart-station/internal/metrics"
	"ev-chart-station/internal/repository"
	"ev-chart-station/internal/session"
	"ev-chart-station/pkg/idgen"
	"ev-chart-station/pkg/station"
	"ev-chart-station/pkg/validator"
)

// StationStore 站点持久化
type StationStore interface {
	Create(ctx context.Context, orgID string, r *station.Record) (*repository.StationModel, error)
	Update(ctx context.Context, orgID string, id idgen.ID, r *station.Record) (*repository.StationModel, error)
	Get(ctx context.Context, orgID string, id idgen.ID) (*repository.StationModel, error)
	List(ctx context.Context, orgID string) ([]repository.StationModel, error)
}

// Handler 站点相关接口
type Handler struct {
	store    StationStore
	tracker  conflict.Tracker
	features station.Features
	log      *zap.Logger
}

func NewHandler(store StationStore, tracker conflict.Tracker, features station.Features, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, tracker: tracker, features: features, log: log}
}

// Validate 校验站点表单
//
//	@Summary	Validate a station registration form
//	@Tags		stations
//	@Accept		json
//	@Produce	json
//	@Param		X-Draft-ID	header		string			false	"form draft id"
//	@Param		body		body		stationRequest	true	"station and options"
//	@Success	200			{object}	station.Result
//	@Failure	400			{object}	errorResponse
//	@Router		/stations/validate [post]
func (h *Handler) Validate(c *gin.Context) {
	claims, req, ok := h.bind(c, validator.SceneCreate)
	if !ok {
		return
	}
	res := h.check(c, claims, req, false)
	c.JSON(http.StatusOK, res)
}

// Create 登记新站点
//
//	@Summary	Register a station
//	@Tags		stations
//	@Accept		json
//	@Produce	json
//	@Param		X-Draft-ID	header		string			false	"form draft id"
//	@Param		body		body		stationRequest	true	"station and options"
//	@Success	201			{object}	stationResponse
//	@Failure	409			{object}	errorResponse
//	@Failure	422			{object}	station.Result
//	@Router		/stations [post]
func (h *Handler) Create(c *gin.Context) {
	claims, req, ok := h.bind(c, validator.SceneCreate)
	if !ok {
		return
	}
	if res := h.check(c, claims, req, true); !res.Valid() {
		metrics.ObserveSubmission(metrics.ResultRejected)
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}

	m, err := h.store.Create(c.Request.Context(), claims.OrgID, req.Station)
	if err != nil {
		h.storeError(c, claims, err)
		return
	}
	h.clearConflict(c, claims)
	metrics.ObserveSubmission(metrics.ResultCreated)
	h.log.Info("station registered", zap.String("org_id", claims.OrgID), zap.String("station", m.Key()))
	c.JSON(http.StatusCreated, toResponse(m))
}

// Update 修改已登记的站点
//
//	@Summary	Update a station
//	@Tags		stations
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"station id"
//	@Param		body	body		stationRequest	true	"station and options"
//	@Success	200		{object}	stationResponse
//	@Failure	404		{object}	errorResponse
//	@Failure	409		{object}	errorResponse
//	@Failure	422		{object}	station.Result
//	@Router		/stations/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims, req, ok := h.bind(c, validator.SceneUpdate)
	if !ok {
		return
	}
	if res := h.check(c, claims, req, true); !res.Valid() {
		metrics.ObserveSubmission(metrics.ResultRejected)
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}

	m, err := h.store.Update(c.Request.Context(), claims.OrgID, id, req.Station)
	if err != nil {
		h.storeError(c, claims, err)
		return
	}
	h.clearConflict(c, claims)
	c.JSON(http.StatusOK, toResponse(m))
}

// Get 读取站点
//
//	@Summary	Get a station
//	@Tags		stations
//	@Produce	json
//	@Param		id	path		string	true	"station id"
//	@Success	200	{object}	stationResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/stations/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims, ok := h.session(c)
	if !ok {
		return
	}
	m, err := h.store.Get(c.Request.Context(), claims.OrgID, id)
	if err != nil {
		h.storeError(c, claims, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(m))
}

// List 本机构的站点
//
//	@Summary	List stations of the current organization
//	@Tags		stations
//	@Produce	json
//	@Success	200	{array}	stationResponse
//	@Router		/stations [get]
func (h *Handler) List(c *gin.Context) {
	claims, ok := h.session(c)
	if !ok {
		return
	}
	list, err := h.store.List(c.Request.Context(), claims.OrgID)
	if err != nil {
		h.storeError(c, claims, err)
		return
	}
	out := make([]stationResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) session(c *gin.Context) (*session.Claims, bool) {
	claims, err := session.From(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return nil, false
	}
	return claims, true
}

// bind 解析请求体，并按场景做请求层面的结构检查
func (h *Handler) bind(c *gin.Context, scene validator.ValidateScene) (*session.Claims, *stationRequest, bool) {
	claims, ok := h.session(c)
	if !ok {
		return nil, nil, false
	}
	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, nil, false
	}
	if req.Station == nil {
		req.Station = &station.Record{}
	}
	if errs := validator.Validate(req.Station, scene); len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "malformed station payload", Fields: errs})
		return nil, nil, false
	}
	claims.ApplyTo(req.Station)
	return claims, &req, true
}

// check 运行校验引擎
// 功能开关以服务端配置为准。草稿之前遇到过重复冲突时，仅校验接口放宽唯一键两项；
// 写入时 write 为 true，唯一键必须完整且格式正确
func (h *Handler) check(c *gin.Context, claims *session.Claims, req *stationRequest, write bool) *station.Result {
	opts := req.Options
	opts.Features = h.features
	switch {
	case write:
		opts.DuplicateStationError = false
	case !opts.DuplicateStationError:
		opts.DuplicateStationError = h.seenConflict(c, claims)
	}

	res := station.Check(req.Station, opts)

	invalid := make(map[string]string)
	for f, s := range res.States {
		if !s.IsValid() {
			invalid[f.Key()] = s.Status.String()
		}
	}
	metrics.ObserveValidation(res.Valid(), invalid)
	return res
}

func (h *Handler) seenConflict(c *gin.Context, claims *session.Claims) bool {
	draft := c.GetHeader(HeaderDraftID)
	if draft == "" || h.tracker == nil {
		return false
	}
	seen, err := h.tracker.Seen(c.Request.Context(), claims.OrgID, draft)
	if err != nil {
		h.log.Warn("conflict lookup failed", zap.String("draft_id", draft), zap.Error(err))
		return false
	}
	return seen
}

func (h *Handler) markConflict(c *gin.Context, claims *session.Claims) {
	draft := c.GetHeader(HeaderDraftID)
	if draft == "" || h.tracker == nil {
		return
	}
	if err := h.tracker.Mark(c.Request.Context(), claims.OrgID, draft); err != nil {
		h.log.Warn("conflict mark failed", zap.String("draft_id", draft), zap.Error(err))
	}
}

func (h *Handler) clearConflict(c *gin.Context, claims *session.Claims) {
	draft := c.GetHeader(HeaderDraftID)
	if draft == "" || h.tracker == nil {
		return
	}
	if err := h.tracker.Clear(c.Request.Context(), claims.OrgID, draft); err != nil {
		h.log.Warn("conflict clear failed", zap.String("draft_id", draft), zap.Error(err))
	}
}

// storeError 持久化错误映射为 HTTP 状态
func (h *Handler) storeError(c *gin.Context, claims *session.Claims, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateStation):
		h.markConflict(c, claims)
		metrics.ObserveSubmission(metrics.ResultDuplicate)
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrStationNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		metrics.ObserveSubmission(metrics.ResultError)
		h.log.Error("station store failed", zap.String("org_id", claims.OrgID), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func pathID(c *gin.Context) (idgen.ID, bool) {
	id, err := idgen.ParseID(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: repository.ErrStationNotFound.Error()})
		return 0, false
	}
	return id, true
}
