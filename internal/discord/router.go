package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/RobotSudo/time-bot/internal/commands"
	"github.com/RobotSudo/time-bot/internal/domain"
)

// handlerTimeout bounds the store work behind a single interaction.
const handlerTimeout = 10 * time.Second

// Router registers the slash commands and dispatches interactions to the
// command surface.
type Router struct {
	session *discordgo.Session
	log     *zap.Logger
	svc     *commands.Service
}

// NewRouter creates a Router over an open session.
func NewRouter(session *discordgo.Session, log *zap.Logger, svc *commands.Service) *Router {
	return &Router{session: session, log: log, svc: svc}
}

// Register overwrites the application's global slash commands. Call after the
// gateway is open (the application ID comes from session state).
func (r *Router) Register() error {
	cmds := []*discordgo.ApplicationCommand{
		{
			Name:        "mytime",
			Description: "Set your local time",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "time",
					Description: "Example: 1:27 am or 13:27",
					Required:    true,
				},
			},
		},
		{
			Name:        "birthday",
			Description: "Set your birthday (MM-DD)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "date",
					Description: "Example: 05-14",
					Required:    true,
				},
			},
		},
		{
			Name:        "time",
			Description: "Check someone's local time",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Whose clock to read",
					Required:    true,
				},
			},
		},
	}
	_, err := r.session.ApplicationCommandBulkOverwrite(r.session.State.User.ID, "", cmds)
	return err
}

// HandleInteraction routes a slash-command interaction. Registered as a
// discordgo handler.
func (r *Router) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	data := i.ApplicationCommandData()
	switch data.Name {
	case "mytime":
		r.handleMyTime(ctx, i, data)
	case "birthday":
		r.handleBirthday(ctx, i, data)
	case "time":
		r.handleTime(ctx, i, data)
	default:
		// Unknown command — ignore silently
	}
}

// callerID extracts the invoking user's ID (guild or DM interaction).
func callerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (r *Router) reply(i *discordgo.InteractionCreate, text string, ephemeral bool) {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: text},
	}
	if ephemeral {
		resp.Data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := r.session.InteractionRespond(i.Interaction, resp); err != nil {
		r.log.Error("interaction respond failed", zap.Error(err))
	}
}

func (r *Router) handleMyTime(ctx context.Context, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	raw := data.Options[0].StringValue()
	offset, err := r.svc.SetLocalTime(ctx, callerID(i), raw, time.Now().UTC())
	switch {
	case errors.Is(err, domain.ErrBadTime):
		r.reply(i, replyBadFormat, true)
	case err != nil:
		r.log.Error("set local time failed", zap.Error(err))
		r.reply(i, replyInternal, true)
	default:
		r.reply(i, fmt.Sprintf(replyOffsetFmt, domain.FormatOffset(offset)), true)
	}
}

func (r *Router) handleBirthday(ctx context.Context, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	raw := data.Options[0].StringValue()
	md, err := r.svc.SetBirthday(ctx, callerID(i), raw)
	switch {
	case errors.Is(err, domain.ErrBadDate):
		r.reply(i, replyBadFormat, true)
	case err != nil:
		r.log.Error("set birthday failed", zap.Error(err))
		r.reply(i, replyInternal, true)
	default:
		r.reply(i, fmt.Sprintf(replyBirthdayFmt, md), true)
	}
}

func (r *Router) handleTime(ctx context.Context, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	target := data.Options[0].UserValue(r.session)
	if target == nil {
		r.reply(i, replyBadFormat, true)
		return
	}

	name := target.Username
	if i.GuildID != "" {
		if m, err := r.session.State.Member(i.GuildID, target.ID); err == nil && m.Nick != "" {
			name = m.Nick
		}
	}

	clock, offset, err := r.svc.LocalTime(ctx, target.ID, time.Now().UTC())
	switch {
	case errors.Is(err, commands.ErrNotConfigured):
		r.reply(i, fmt.Sprintf(replyNoTZFmt, name), true)
	case err != nil:
		r.log.Error("local time lookup failed", zap.Error(err))
		r.reply(i, replyInternal, true)
	default:
		r.reply(i, fmt.Sprintf(replyTimeFmt, name, clock, domain.FormatOffset(offset)), false)
	}
}
