package api

import (
	"github.com/limbo/dopamine/pkg/entity"
	jwtservice "github.com/limbo/dopamine/pkg/jwt_service"
)

type JWTServiceI interface {
	GenerateToken(user *entity.User) (string, error)
	ParseToken(tokenString string) (*jwtservice.Claims, error)
}
