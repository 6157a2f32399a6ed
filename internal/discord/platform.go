package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/RobotSudo/time-bot/internal/scheduler"
)

// Actions implements scheduler.Platform on top of a Discord session. Role
// state is per guild (the marker role is located by name in each guild);
// announcements go to the single configured channel.
type Actions struct {
	session   *discordgo.Session
	log       *zap.Logger
	roleName  string
	channelID string
}

// NewActions wires platform-side effects to the given session.
func NewActions(session *discordgo.Session, log *zap.Logger, roleName, channelID string) *Actions {
	return &Actions{
		session:   session,
		log:       log,
		roleName:  roleName,
		channelID: channelID,
	}
}

// Contexts lists the guilds currently in session state.
func (a *Actions) Contexts() []string {
	guilds := a.session.State.Guilds
	ids := make([]string, 0, len(guilds))
	for _, g := range guilds {
		ids = append(ids, g.ID)
	}
	return ids
}

// roleID locates the marker role by name within a guild, state-first.
func (a *Actions) roleID(ctx context.Context, guildID string) (string, bool) {
	var roles []*discordgo.Role
	if g, err := a.session.State.Guild(guildID); err == nil {
		roles = g.Roles
	} else {
		var rerr error
		roles, rerr = a.session.GuildRoles(guildID, discordgo.WithContext(ctx))
		if rerr != nil {
			a.log.Warn("list roles failed", zap.Error(rerr), zap.String("guildID", guildID))
			return "", false
		}
	}
	for _, r := range roles {
		if r.Name == a.roleName {
			return r.ID, true
		}
	}
	return "", false
}

// Member resolves a user within a guild, falling back to a REST lookup when
// the member is not cached. The returned handle carries whether the marker
// role is currently held.
func (a *Actions) Member(ctx context.Context, guildID, userID string) (*scheduler.Member, bool) {
	m, err := a.session.State.Member(guildID, userID)
	if err != nil {
		m, err = a.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, false
		}
	}

	hasRole := false
	if rid, ok := a.roleID(ctx, guildID); ok {
		for _, r := range m.Roles {
			if r == rid {
				hasRole = true
				break
			}
		}
	}

	name := m.Nick
	mention := userID
	if m.User != nil {
		if name == "" {
			name = m.User.Username
		}
		mention = m.User.Mention()
	}
	return &scheduler.Member{
		ID:          userID,
		DisplayName: name,
		Mention:     mention,
		HasRole:     hasRole,
	}, true
}

// GrantRole adds the marker role to a member. A guild without the role is an
// error the scheduler logs and moves past.
func (a *Actions) GrantRole(ctx context.Context, guildID, userID string) error {
	rid, ok := a.roleID(ctx, guildID)
	if !ok {
		return fmt.Errorf("role %q not found in guild %s", a.roleName, guildID)
	}
	return a.session.GuildMemberRoleAdd(guildID, userID, rid, discordgo.WithContext(ctx))
}

// RevokeRole removes the marker role from a member.
func (a *Actions) RevokeRole(ctx context.Context, guildID, userID string) error {
	rid, ok := a.roleID(ctx, guildID)
	if !ok {
		return fmt.Errorf("role %q not found in guild %s", a.roleName, guildID)
	}
	return a.session.GuildMemberRoleRemove(guildID, userID, rid, discordgo.WithContext(ctx))
}

// Announce posts the birthday message to the configured channel.
func (a *Actions) Announce(ctx context.Context, guildID string, m *scheduler.Member) error {
	_, err := a.session.ChannelMessageSend(
		a.channelID,
		fmt.Sprintf(announceFmt, m.Mention),
		discordgo.WithContext(ctx),
	)
	return err
}
