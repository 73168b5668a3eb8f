package impl

import (
	"context"
	"log/slog"
	"time"

	"diner/config"
	deliverycontext "diner/internal/delivery/context"
	"diner/internal/domain/command"
	"diner/internal/domain/entity"
	domainerrors "diner/internal/domain/errors"
	"diner/internal/domain/repository"
	"diner/internal/domain/service"
	"diner/internal/usecase"
	"diner/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxTitleRunes = 40

// chatService is the streaming session controller. It owns the lifecycle of
// one assistant turn: transcript bookkeeping, the model stream, incremental
// command extraction and dispatch, and settling the session afterwards.
type chatService struct {
	sessions repository.SessionRepository
	menuRepo repository.MenuRepository
	orders   usecase.OrderUsecase
	model    service.ChatModel
	cfg      *config.ChatConfig
	logger   *slog.Logger
}

// ChatServiceParams holds dependencies for chatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	Sessions repository.SessionRepository
	MenuRepo repository.MenuRepository
	Orders   usecase.OrderUsecase
	Model    service.ChatModel
	Config   *config.Config
	Logger   *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		sessions: params.Sessions,
		menuRepo: params.MenuRepo,
		orders:   params.Orders,
		model:    params.Model,
		cfg:      params.Config.Chat,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
// Session-scoped requests get a session_id attribute on every line.
func (srv *chatService) log(ctx context.Context) *slog.Logger {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	if sessionID := deliverycontext.GetSessionID(ctx); sessionID != uuid.Nil {
		logger = logger.With(slog.String("session_id", sessionID.String()))
	}

	return logger
}

// StreamTurn runs one full user turn against a session. At most one turn may
// stream per session at a time; concurrent calls get ErrTurnInProgress.
func (srv *chatService) StreamTurn(ctx context.Context, input *usecase.StreamTurnInput, sink usecase.TurnSink) error {
	menu, err := srv.menuRepo.ListAvailable(ctx)
	if err != nil {
		return errors.Wrap(err, "loading menu for chat turn")
	}

	prompt, err := srv.beginTurn(ctx, input, menu)
	if err != nil {
		return err
	}

	parser := command.NewParser()
	dispatcher := newTurnDispatcher(menu, srv.orders, srv.log(ctx))

	// pending holds assistant messages produced by commands (cart summaries,
	// order confirmations). They are appended after the streamed message
	// settles so ReplaceAssistant always targets the in-progress message.
	var pending []entity.Message

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var idle *time.Timer
	if srv.cfg.IdleTimeout > 0 {
		idle = time.AfterFunc(srv.cfg.IdleTimeout, cancel)
		defer idle.Stop()
	}

	lastDisplay := ""
	streamErr := srv.model.StreamCompletion(streamCtx, prompt, func(delta string) error {
		if idle != nil {
			idle.Reset(srv.cfg.IdleTimeout)
		}

		res := parser.Feed(delta)
		appended, notices, err := srv.applyResult(streamCtx, input, dispatcher, res)
		if err != nil {
			return err
		}
		pending = append(pending, appended...)

		if len(notices) > 0 {
			if err := sink(usecase.TurnEvent{Notices: notices}); err != nil {
				return err
			}
		}
		if res.Display != lastDisplay {
			lastDisplay = res.Display
			if err := sink(usecase.TurnEvent{Text: res.Display}); err != nil {
				return err
			}
		}

		return nil
	})

	res := parser.Flush()
	appended, notices, applyErr := srv.applyResult(ctx, input, dispatcher, res)
	if applyErr == nil {
		pending = append(pending, appended...)
	}

	if streamErr != nil {
		notices = append(notices, srv.streamFailureNotice(ctx, streamCtx, streamErr))
	}

	settleErr := srv.settle(ctx, input, res.Display, pending)

	// The sink is best effort once the session is settled; a dead client
	// must not mask a settle failure.
	sinkErr := srv.emitSettled(sink, res.Display, lastDisplay, notices, pending)

	switch {
	case settleErr != nil:
		return settleErr
	case streamErr != nil && isSinkError(ctx, streamErr):
		return streamErr
	case applyErr != nil:
		return applyErr
	default:
		return sinkErr
	}
}

// beginTurn marks the session as streaming, records the user message and the
// in-progress assistant placeholder, and builds the model prompt from the
// transcript under the session lock.
func (srv *chatService) beginTurn(ctx context.Context, input *usecase.StreamTurnInput, menu entity.Menu) ([]service.ChatMessage, error) {
	var prompt []service.ChatMessage

	err := srv.sessions.WithSession(ctx, input.SessionID, input.UserID, func(sess *entity.Session) error {
		if sess.Streaming {
			return domainerrors.ErrTurnInProgress
		}
		sess.Streaming = true

		if sess.Title == "" {
			sess.Title = util.TruncateTitle(input.Text, maxTitleRunes)
		}
		sess.Append(entity.RoleUser, input.Text)

		prompt = append(prompt, service.ChatMessage{
			Role:    string(entity.RoleSystem),
			Content: buildSystemPrompt(menu, sess.Cart),
		})
		history := sess.Messages
		if limit := srv.cfg.HistoryLimit; limit > 0 && len(history) > limit {
			history = history[len(history)-limit:]
		}
		for _, msg := range history {
			prompt = append(prompt, service.ChatMessage{Role: string(msg.Role), Content: msg.Content})
		}

		// Placeholder for the streamed response; replaced as text arrives.
		sess.Append(entity.RoleAssistant, "")

		return nil
	})
	if err != nil {
		return nil, err
	}

	return prompt, nil
}

// applyResult dispatches newly extracted commands and records the current
// display text into the transcript, all under one session lock acquisition.
func (srv *chatService) applyResult(
	ctx context.Context,
	input *usecase.StreamTurnInput,
	dispatcher *turnDispatcher,
	res command.Result,
) ([]entity.Message, []string, error) {
	for _, bad := range res.Malformed {
		srv.log(ctx).Warn("Discarding malformed command",
			slog.String("session_id", input.SessionID.String()),
			slog.String("kind", string(bad.Kind)),
			slog.Any("error", bad.Err),
		)
	}

	var out dispatchOutcome
	err := srv.sessions.WithSession(ctx, input.SessionID, input.UserID, func(sess *entity.Session) error {
		if len(res.Commands) > 0 {
			out = dispatcher.Apply(ctx, sess, res.Commands)
		}
		sess.ReplaceAssistant(res.Display)

		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "applying turn commands")
	}

	return out.Messages, out.Notices, nil
}

// settle finalizes the session after the stream ends: the placeholder is
// replaced with the final display (or dropped when the turn produced no
// text), command messages are appended, and the streaming flag is cleared.
func (srv *chatService) settle(ctx context.Context, input *usecase.StreamTurnInput, display string, pending []entity.Message) error {
	return srv.sessions.WithSession(ctx, input.SessionID, input.UserID, func(sess *entity.Session) error {
		if display == "" {
			// No response text ever arrived; drop the placeholder rather
			// than leaving an empty assistant bubble in the transcript.
			if n := len(sess.Messages); n > 0 && sess.Messages[n-1].Role == entity.RoleAssistant && sess.Messages[n-1].Content == "" {
				sess.Messages = sess.Messages[:n-1]
			}
		} else {
			sess.ReplaceAssistant(display)
		}
		for _, msg := range pending {
			sess.Append(msg.Role, msg.Content)
		}
		sess.Streaming = false

		return nil
	})
}

func (srv *chatService) emitSettled(sink usecase.TurnSink, display, lastDisplay string, notices []string, pending []entity.Message) error {
	if display != lastDisplay {
		if err := sink(usecase.TurnEvent{Text: display}); err != nil {
			return err
		}
	}
	if len(notices) > 0 {
		if err := sink(usecase.TurnEvent{Notices: notices}); err != nil {
			return err
		}
	}
	for i := range pending {
		if err := sink(usecase.TurnEvent{Message: &pending[i]}); err != nil {
			return err
		}
	}

	return sink(usecase.TurnEvent{Done: true})
}

// streamFailureNotice classifies a stream error. The partial display is kept
// either way; the notice just tells the customer what happened.
func (srv *chatService) streamFailureNotice(ctx, streamCtx context.Context, streamErr error) string {
	if streamCtx.Err() != nil && ctx.Err() == nil {
		srv.log(ctx).Warn("Model stream idle timeout")

		return "The assistant stopped responding, please try again"
	}
	srv.log(ctx).Error("Model stream failed", slog.Any("error", streamErr))

	return "Something went wrong while answering, please try again"
}

// isSinkError reports whether the stream aborted because the caller's own
// context ended, which means the client is gone and the error should surface.
func isSinkError(ctx context.Context, streamErr error) bool {
	return ctx.Err() != nil && errors.Is(streamErr, ctx.Err())
}

// ListConversations returns the user's conversation summaries.
func (srv *chatService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*entity.SessionSummary, error) {
	return srv.sessions.ListByUser(ctx, userID)
}

// GetTranscript returns the full message history of a session.
func (srv *chatService) GetTranscript(ctx context.Context, sessionID uuid.UUID) ([]entity.Message, error) {
	var messages []entity.Message
	err := srv.sessions.ViewSession(ctx, sessionID, func(sess *entity.Session) error {
		messages = append([]entity.Message(nil), sess.Messages...)

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}

		return nil, err
	}

	return messages, nil
}

// DeleteConversation removes the session, its transcript and its cart.
func (srv *chatService) DeleteConversation(ctx context.Context, sessionID uuid.UUID) error {
	if err := srv.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domainerrors.ErrSessionNotFound
		}

		return err
	}

	return nil
}
