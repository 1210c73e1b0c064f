// Package discord delivers the composed forecast as a direct message.
// Each send opens its own short-lived gateway session: connect, wait for
// ready, resolve the recipient, send text plus chart in one message, close.
package discord

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/websocket"

	"github.com/angas/weatherbot-go/errs"
)

const attachmentName = "plot.png"

type Notifier struct {
	token  string
	logger *slog.Logger
}

func NewNotifier(token string, logger *slog.Logger) *Notifier {
	return &Notifier{token: token, logger: logger}
}

// SendDM delivers content and the chart image to the user in a single direct
// message. Exactly one delivery attempt is made; the session is closed
// whatever the outcome.
func (n *Notifier) SendDM(ctx context.Context, userID, content string, image io.Reader) error {
	if n.token == "" {
		return fmt.Errorf("%w: discord bot token is not set", errs.ErrAuth)
	}

	session, err := discordgo.New("Bot " + n.token)
	if err != nil {
		return fmt.Errorf("creating discord session: %w: %w", errs.ErrAuth, err)
	}
	session.Identify.Intents = discordgo.IntentsDirectMessages

	ready := make(chan struct{})
	session.AddHandlerOnce(func(_ *discordgo.Session, _ *discordgo.Ready) {
		close(ready)
	})

	if err := session.Open(); err != nil {
		return classify("opening gateway session", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			n.logger.Warn("closing discord session", slog.Any("error", err))
		}
	}()

	select {
	case <-ready:
	case <-ctx.Done():
		return fmt.Errorf("waiting for session ready: %w", ctx.Err())
	}
	n.logger.Info("discord session ready", slog.String("bot", session.State.User.Username))

	user, err := session.User(userID)
	if err != nil {
		return classify("resolving recipient", err)
	}

	channel, err := session.UserChannelCreate(user.ID)
	if err != nil {
		return classify("opening dm channel", err)
	}

	_, err = session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content: content,
		Files: []*discordgo.File{{
			Name:        attachmentName,
			ContentType: "image/png",
			Reader:      image,
		}},
	})
	if err != nil {
		return classify("sending message", err)
	}

	n.logger.Info("message delivered", slog.String("recipient", userID))
	return nil
}

// classify maps discordgo failures onto the shared error categories.
func classify(op string, err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeUnknownUser:
				return fmt.Errorf("%s: %w: %w", op, errs.ErrRecipientNotFound, err)
			case discordgo.ErrCodeCannotSendMessagesToThisUser:
				return fmt.Errorf("%s: %w: %w", op, errs.ErrPermissionDenied, err)
			}
		}
		if restErr.Response != nil {
			switch restErr.Response.StatusCode {
			case http.StatusUnauthorized:
				return fmt.Errorf("%s: %w: %w", op, errs.ErrAuth, err)
			case http.StatusForbidden:
				return fmt.Errorf("%s: %w: %w", op, errs.ErrPermissionDenied, err)
			case http.StatusNotFound:
				return fmt.Errorf("%s: %w: %w", op, errs.ErrRecipientNotFound, err)
			}
		}
		return fmt.Errorf("%s: %w: %w", op, errs.ErrTransport, err)
	}

	// Gateway close 4004 means the token was rejected during identify.
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) && closeErr.Code == 4004 {
		return fmt.Errorf("%s: %w: %w", op, errs.ErrAuth, err)
	}

	return fmt.Errorf("%s: %w: %w", op, errs.ErrTransport, err)
}
