package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns a map of all available bot commands.
// It configures each command with appropriate handlers and middleware.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/auth"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "auth",
		Handler:     NewAuthHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/unauth"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "unauth",
		Handler:     NewUnauthHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}

	ownerMiddleware := []tgbot.Middleware{OwnerOnly(deps)}

	handlers["/listgroup"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "listgroup",
		Handler:     NewListGroupHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  ownerMiddleware,
	}
	handlers["/countuser"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "countuser",
		Handler:     NewCountUserHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  ownerMiddleware,
	}
	handlers["/broadcast"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "broadcast",
		Handler:     NewBroadcastHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  ownerMiddleware,
	}

	privilegedMiddleware := []tgbot.Middleware{PrivilegedOnly(deps)}

	handlers["/settimer"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "settimer",
		Handler:     NewSetTimerHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
	}
	handlers["/autodlt"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "autodlt",
		Handler:     NewAutoDeleteHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  privilegedMiddleware,
	}

	return handlers
}
