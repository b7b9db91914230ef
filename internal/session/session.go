package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ev-chart-station/pkg/station"
)

// 受助方类型
const (
	RecipientDirect = "direct-recipient"
	RecipientSub    = "sub-recipient"
)

const contextKey = "evchart.session"

var (
	ErrInvalidToken = errors.New("session: invalid token")
	ErrMissingToken = errors.New("session: missing bearer token")
	ErrNoSession    = errors.New("session: no session in context")
)

// Claims 登录会话，由认证服务签发
type Claims struct {
	OrgID         string `json:"org_id"`
	OrgName       string `json:"org_name"`
	RecipientType string `json:"recipient_type"`
	Role          string `json:"role"`
	jwt.RegisteredClaims
}

// IsDirectRecipient 是否直接受助方
func (c *Claims) IsDirectRecipient() bool {
	return c.RecipientType == RecipientDirect
}

// ApplyTo 直接受助方登记的站点，dr_id 为空时使用本机构
func (c *Claims) ApplyTo(r *station.Record) {
	if r == nil || !c.IsDirectRecipient() {
		return
	}
	if strings.TrimSpace(r.DRID) == "" {
		r.DRID = c.OrgID
	}
}

// Codec 签发和解析会话令牌，只接受 HS256
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewCodec(secret, issuer string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Sign 签发令牌，主要用于测试和命令行
func (c *Codec) Sign(claims Claims) (string, error) {
	now := time.Now()
	claims.Issuer = c.issuer
	claims.Subject = claims.OrgID
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse 校验签名、算法、签发方和有效期
func (c *Codec) Parse(token string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.OrgID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Middleware 解析 Authorization: Bearer 令牌并放入 gin 上下文
func Middleware(codec *Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingToken.Error()})
			return
		}
		claims, err := codec.Parse(token)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}
		c.Set(contextKey, claims)
		c.Next()
	}
}

// From 读取中间件放入的会话
func From(c *gin.Context) (*Claims, error) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, ErrNoSession
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil, ErrNoSession
	}
	return claims, nil
}

func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
