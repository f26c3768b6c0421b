// Package jwt 校验由认证服务签发的访问令牌
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	UserTypeUser  = "user"
	UserTypeAdmin = "admin"
)

// 签发与校验时间的容差
const clockSkew = 5 * time.Second

// Claims 访问令牌声明
type Claims struct {
	UserID   int64  `json:"user_id"`
	UserType string `json:"user_type"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Config 令牌配置
type Config struct {
	Secret           string
	AccessExpireTime time.Duration
	Issuer           string
}

var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenNotActive = errors.New("token not active yet")
)

// 库错误到本包错误的映射，按顺序匹配
var parseErrors = []struct {
	from, to error
}{
	{jwt.ErrTokenExpired, ErrTokenExpired},
	{jwt.ErrTokenMalformed, ErrTokenMalformed},
	{jwt.ErrTokenNotValidYet, ErrTokenNotActive},
}

// Manager 使用 HS256 共享密钥签发和校验令牌
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	parser *jwt.Parser
}

func NewManager(cfg *Config) *Manager {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkew),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.AccessExpireTime,
		issuer: cfg.Issuer,
		parser: jwt.NewParser(opts...),
	}
}

// GenerateAccessToken 签发访问令牌，返回令牌与过期时间戳
// 线上令牌由认证服务签发，本方法供测试与本地调试使用
func (m *Manager) GenerateAccessToken(userID int64, userType, role string) (string, int64, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		UserID:   userID,
		UserType: userType,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userType,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, exp.Unix(), nil
}

// ParseToken 校验签名、签发方与有效期
func (m *Manager) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err == nil {
		return claims, nil
	}
	for _, e := range parseErrors {
		if errors.Is(err, e.from) {
			return nil, e.to
		}
	}
	return nil, ErrTokenInvalid
}
