package discord

import (
	"github.com/apex/log"
)

// UpdateStatus shows how to get help in the bot's presence.
func UpdateStatus(presence PresenceUpdater, prefix string) {
	err := presence.UpdateGameStatus(0, prefix+HelpCommand)
	if err != nil {
		log.WithError(err).Warn("discord.status.update")
	}
}
