package middleware

import (
	"github.com/MicahParks/keyfunc/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"
)

// AppUser is the authenticated caller. OwnerID is the opaque identity string
// every workspace is scoped to.
type AppUser struct {
	OwnerID string
}

type App struct {
	DBConn        *pgxpool.Pool
	Queue         *amqp091.Channel
	Key           *keyfunc.Keyfunc
	MasterAPIKey  string
	MasterOwnerID string
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(
	db *pgxpool.Pool,
	queue *amqp091.Channel,
	key *keyfunc.Keyfunc,
	masterAPIKey string,
	masterOwnerID string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				DBConn:        db,
				Queue:         queue,
				Key:           key,
				MasterAPIKey:  masterAPIKey,
				MasterOwnerID: masterOwnerID,
			}
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
