package handler

import (
	"sunstone/internal/usecase"
)

var (
	authHandler    *AuthHandler
	commentHandler *CommentHandler
	merchHandler   *MerchHandler
	roleHandler    *RoleHandler
	revealHandler  *RevealHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	commentUseCase *usecase.CommentUseCase,
	merchUseCase *usecase.MerchUseCase,
	roleUseCase *usecase.RoleUseCase,
	revealUseCase *usecase.RevealUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	commentHandler = NewCommentHandler(commentUseCase)
	merchHandler = NewMerchHandler(merchUseCase)
	roleHandler = NewRoleHandler(roleUseCase)
	revealHandler = NewRevealHandler(revealUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetCommentHandler() *CommentHandler {
	return commentHandler
}

func GetMerchHandler() *MerchHandler {
	return merchHandler
}

func GetRoleHandler() *RoleHandler {
	return roleHandler
}

func GetRevealHandler() *RevealHandler {
	return revealHandler
}
