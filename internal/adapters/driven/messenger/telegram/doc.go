// Package telegram implements the driven.Messenger port against the
// Telegram Bot API, plus the update mapping the long-poll driver uses.
//
// Only the small Bot API slice the dispatcher consumes is covered:
// getUpdates, sendMessage, editMessageText, editMessageReplyMarkup and
// answerCallbackQuery. The wire protocol itself never leaks past this
// package; everything crossing the port boundary is a domain type.
package telegram
