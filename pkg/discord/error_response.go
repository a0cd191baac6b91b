package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// ErrorResponse is a JSON error code returned by the API.
type ErrorResponse int

const (
	ErrorResponseUnknown                ErrorResponse = -1
	ErrorResponseServerError            ErrorResponse = 0
	ErrorResponseUnknownAccount         ErrorResponse = 10001
	ErrorResponseUnknownApplication     ErrorResponse = 10002
	ErrorResponseUnknownChannel         ErrorResponse = 10003
	ErrorResponseUnknownGuild           ErrorResponse = 10004
	ErrorResponseUnknownIntegration     ErrorResponse = 10005
	ErrorResponseUnknownInvite          ErrorResponse = 10006
	ErrorResponseUnknownMember          ErrorResponse = 10007
	ErrorResponseUnknownMessage         ErrorResponse = 10008
	ErrorResponseUnknownOverride        ErrorResponse = 10009
	ErrorResponseUnknownRole            ErrorResponse = 10011
	ErrorResponseUnknownToken           ErrorResponse = 10012
	ErrorResponseUnknownUser            ErrorResponse = 10013
	ErrorResponseUnknownEmoji           ErrorResponse = 10014
	ErrorResponseUnknownWebhook         ErrorResponse = 10015
	ErrorResponseUnknownInteraction     ErrorResponse = 10062
	ErrorResponseUnknownCommand         ErrorResponse = 10063
	ErrorResponseUnknownStageInstance   ErrorResponse = 10067
	ErrorResponseUnknownScheduledEvent  ErrorResponse = 10070
	ErrorResponseBotsNotAllowed         ErrorResponse = 20001
	ErrorResponseOnlyBotsAllowed        ErrorResponse = 20002
	ErrorResponseMaxGuilds              ErrorResponse = 30001
	ErrorResponseMaxRoles               ErrorResponse = 30005
	ErrorResponseMaxWebhooks            ErrorResponse = 30007
	ErrorResponseMaxEmojis              ErrorResponse = 30008
	ErrorResponseMaxReactions           ErrorResponse = 30010
	ErrorResponseMaxChannels            ErrorResponse = 30013
	ErrorResponseMissingAccess          ErrorResponse = 50001
	ErrorResponseInvalidAccountType     ErrorResponse = 50002
	ErrorResponseInvalidDMAction        ErrorResponse = 50003
	ErrorResponseEmbedDisabled          ErrorResponse = 50004
	ErrorResponseInvalidAuthor          ErrorResponse = 50005
	ErrorResponseCannotSendEmptyMessage ErrorResponse = 50006
	ErrorResponseCannotSendToUser       ErrorResponse = 50007
	ErrorResponseCannotSendInVoice      ErrorResponse = 50008
	ErrorResponseMissingPermissions     ErrorResponse = 50013
	ErrorResponseInvalidToken           ErrorResponse = 50014
	ErrorResponseInvalidBulkDelete      ErrorResponse = 50016
	ErrorResponseInvalidFormBody        ErrorResponse = 50035
	ErrorResponseInviteForUnknownGuild  ErrorResponse = 50036
	ErrorResponseInvalidAPIVersion      ErrorResponse = 50041
	ErrorResponseReactionBlocked        ErrorResponse = 90001
	ErrorResponseResourceOverloaded     ErrorResponse = 130000
)

type errorResponseInfo struct {
	name    string
	meaning string
}

var errorResponseInfos = map[ErrorResponse]errorResponseInfo{
	ErrorResponseUnknown:                {"UNKNOWN", "Unknown error"},
	ErrorResponseServerError:            {"SERVER_ERROR", "Discord encountered an internal server error"},
	ErrorResponseUnknownAccount:         {"UNKNOWN_ACCOUNT", "Unknown Account"},
	ErrorResponseUnknownApplication:     {"UNKNOWN_APPLICATION", "Unknown Application"},
	ErrorResponseUnknownChannel:         {"UNKNOWN_CHANNEL", "Unknown Channel"},
	ErrorResponseUnknownGuild:           {"UNKNOWN_GUILD", "Unknown Guild"},
	ErrorResponseUnknownIntegration:     {"UNKNOWN_INTEGRATION", "Unknown Integration"},
	ErrorResponseUnknownInvite:          {"UNKNOWN_INVITE", "Unknown Invite"},
	ErrorResponseUnknownMember:          {"UNKNOWN_MEMBER", "Unknown Member"},
	ErrorResponseUnknownMessage:         {"UNKNOWN_MESSAGE", "Unknown Message"},
	ErrorResponseUnknownOverride:        {"UNKNOWN_OVERRIDE", "Unknown Overwrite"},
	ErrorResponseUnknownRole:            {"UNKNOWN_ROLE", "Unknown Role"},
	ErrorResponseUnknownToken:           {"UNKNOWN_TOKEN", "Unknown Token"},
	ErrorResponseUnknownUser:            {"UNKNOWN_USER", "Unknown User"},
	ErrorResponseUnknownEmoji:           {"UNKNOWN_EMOJI", "Unknown Emoji"},
	ErrorResponseUnknownWebhook:         {"UNKNOWN_WEBHOOK", "Unknown Webhook"},
	ErrorResponseUnknownInteraction:     {"UNKNOWN_INTERACTION", "Unknown interaction"},
	ErrorResponseUnknownCommand:         {"UNKNOWN_COMMAND", "Unknown application command"},
	ErrorResponseUnknownStageInstance:   {"UNKNOWN_STAGE_INSTANCE", "Unknown Stage Instance"},
	ErrorResponseUnknownScheduledEvent:  {"UNKNOWN_SCHEDULED_EVENT", "Unknown Guild Scheduled Event"},
	ErrorResponseBotsNotAllowed:         {"BOTS_NOT_ALLOWED", "Bots cannot use this endpoint"},
	ErrorResponseOnlyBotsAllowed:        {"ONLY_BOTS_ALLOWED", "Only bots can use this endpoint"},
	ErrorResponseMaxGuilds:              {"MAX_GUILDS", "Maximum number of Guilds reached (100)"},
	ErrorResponseMaxRoles:               {"MAX_ROLES_PER_GUILD", "Maximum number of guild roles reached (250)"},
	ErrorResponseMaxWebhooks:            {"MAX_WEBHOOKS", "Maximum number of webhooks reached (15)"},
	ErrorResponseMaxEmojis:              {"MAX_EMOJIS", "Maximum number of emojis reached"},
	ErrorResponseMaxReactions:           {"MAX_REACTIONS", "Maximum number of reactions reached (20)"},
	ErrorResponseMaxChannels:            {"MAX_CHANNELS", "Maximum number of guild channels reached (500)"},
	ErrorResponseMissingAccess:          {"MISSING_ACCESS", "Missing Access"},
	ErrorResponseInvalidAccountType:     {"INVALID_ACCOUNT_TYPE", "Invalid Account Type"},
	ErrorResponseInvalidDMAction:        {"INVALID_DM_ACTION", "Cannot execute action on a DM channel"},
	ErrorResponseEmbedDisabled:          {"EMBED_DISABLED", "Widget Disabled"},
	ErrorResponseInvalidAuthor:          {"INVALID_AUTHOR_EDIT", "Cannot edit a message authored by another user"},
	ErrorResponseCannotSendEmptyMessage: {"CANNOT_SEND_EMPTY_MESSAGE", "Cannot send an empty message"},
	ErrorResponseCannotSendToUser:       {"CANNOT_SEND_TO_USER", "Cannot send messages to this user"},
	ErrorResponseCannotSendInVoice:      {"CANNOT_SEND_IN_VOICE", "Cannot send messages in a voice channel"},
	ErrorResponseMissingPermissions:     {"MISSING_PERMISSIONS", "Missing Permissions"},
	ErrorResponseInvalidToken:           {"INVALID_TOKEN", "Invalid authentication token"},
	ErrorResponseInvalidBulkDelete:      {"INVALID_BULK_DELETE_QUANTITY", "Provided too few or too many messages to delete"},
	ErrorResponseInvalidFormBody:        {"INVALID_FORM_BODY", "Invalid Form Body"},
	ErrorResponseInviteForUnknownGuild:  {"INVITE_FOR_UNKNOWN_GUILD", "An invite was accepted to a guild the application's bot is not in"},
	ErrorResponseInvalidAPIVersion:      {"INVALID_API_VERSION", "Invalid API version"},
	ErrorResponseReactionBlocked:        {"REACTION_BLOCKED", "Reaction Blocked"},
	ErrorResponseResourceOverloaded:     {"RESOURCE_OVERLOADED", "The resource is overloaded."},
}

// ErrorResponseFromKey maps a JSON error code to its constant, or ErrorResponseUnknown.
func ErrorResponseFromKey(code int) ErrorResponse {
	if _, ok := errorResponseInfos[ErrorResponse(code)]; ok {
		return ErrorResponse(code)
	}
	return ErrorResponseUnknown
}

func (e ErrorResponse) Key() int  { return int(e) }
func (e ErrorResponse) Code() int { return int(e) }

func (e ErrorResponse) String() string {
	return errorResponseInfos[ErrorResponseFromKey(int(e))].name
}

// Meaning is the human readable description Discord documents for the code.
func (e ErrorResponse) Meaning() string {
	return errorResponseInfos[ErrorResponseFromKey(int(e))].meaning
}

// ErrorResponseError is a failed API request.
type ErrorResponseError struct {
	Response   ErrorResponse
	Code       int
	Message    string
	StatusCode int
	Errors     map[string]string
}

func (e *ErrorResponseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s", e.Code, e.Message)
	for path, msg := range e.Errors {
		fmt.Fprintf(&b, "\n\t%s: %s", path, msg)
	}
	return b.String()
}

// Is matches another *ErrorResponseError with the same response, so callers can write
// errors.Is(err, discord.NewErrorResponseError(discord.ErrorResponseUnknownMessage)).
func (e *ErrorResponseError) Is(target error) bool {
	var t *ErrorResponseError
	if !errors.As(target, &t) {
		return false
	}
	return t.Response == e.Response
}

// NewErrorResponseError builds the error for a known response.
func NewErrorResponseError(response ErrorResponse) *ErrorResponseError {
	return &ErrorResponseError{Response: response, Code: response.Code(), Message: response.Meaning()}
}

// IsErrorResponse reports whether err carries one of responses.
func IsErrorResponse(err error, responses ...ErrorResponse) bool {
	var e *ErrorResponseError
	if !errors.As(err, &e) {
		return false
	}
	for _, r := range responses {
		if e.Response == r {
			return true
		}
	}
	return false
}

// InsufficientPermissionError is returned before a request is sent when the bot lacks a
// permission in the guild or channel.
type InsufficientPermissionError struct {
	GuildID    snowflake.ID
	ChannelID  snowflake.ID
	Permission Permission
}

func (e *InsufficientPermissionError) Error() string {
	if e.ChannelID != 0 {
		return fmt.Sprintf("Cannot perform action due to a lack of Permission. Missing permission: %s (channel %s)", e.Permission, e.ChannelID)
	}
	return fmt.Sprintf("Cannot perform action due to a lack of Permission. Missing permission: %s", e.Permission)
}

// HierarchyError is returned when the bot tries to act on a role or member ranked at or
// above its own highest role.
type HierarchyError struct {
	Reason string
}

func (e *HierarchyError) Error() string {
	return "Hierarchy error: " + e.Reason
}
