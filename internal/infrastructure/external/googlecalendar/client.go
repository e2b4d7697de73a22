package googlecalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/meetwiselabs/meetwise/internal/domain/entities"
	"github.com/meetwiselabs/meetwise/internal/infrastructure/external/oauth"
	"github.com/meetwiselabs/meetwise/internal/usecase/errors"
)

const baseURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"

// Client talks to the Google Calendar v3 API on behalf of a user, using the
// user's stored refresh token. Transient failures are retried with
// exponential backoff.
type Client struct {
	provider *oauth.GoogleProvider
	logger   *zap.Logger
}

// NewClient creates a new Google Calendar client
func NewClient(provider *oauth.GoogleProvider, logger *zap.Logger) *Client {
	return &Client{
		provider: provider,
		logger:   logger,
	}
}

// wire types for the events list response
type eventList struct {
	Items         []eventItem `json:"items"`
	NextPageToken string      `json:"nextPageToken"`
}

type eventItem struct {
	ID               string         `json:"id"`
	Status           string         `json:"status"`
	Summary          string         `json:"summary"`
	Description      string         `json:"description"`
	Start            eventTime      `json:"start"`
	End              eventTime      `json:"end"`
	RecurringEventID string         `json:"recurringEventId"`
	Organizer        eventOrganizer `json:"organizer"`
	Attendees        []eventPerson  `json:"attendees"`
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type eventOrganizer struct {
	Email string `json:"email"`
}

type eventPerson struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	ResponseStatus string `json:"responseStatus"`
	Optional       bool   `json:"optional"`
}

// ListEvents fetches the user's events in [from, to], expanded to single
// occurrences and ordered by start time. Follows pagination until the
// window is exhausted.
func (c *Client) ListEvents(ctx context.Context, user *entities.User, from, to time.Time) ([]entities.CalendarEvent, error) {
	if !user.HasCalendarConnected() {
		return nil, errors.ErrCalendarNotConnected
	}

	httpClient := c.provider.ClientFor(ctx, *user.OAuthRefreshToken)

	var events []entities.CalendarEvent
	pageToken := ""
	for {
		page, err := c.fetchPage(ctx, httpClient, from, to, pageToken)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Status == "cancelled" {
				continue
			}
			ev, err := mapEvent(item)
			if err != nil {
				c.logger.Warn("skipping unparseable calendar event",
					zap.String("event_id", item.ID), zap.Error(err))
				continue
			}
			events = append(events, ev)
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return events, nil
}

func (c *Client) fetchPage(ctx context.Context, httpClient *http.Client, from, to time.Time, pageToken string) (*eventList, error) {
	params := url.Values{}
	params.Set("timeMin", from.Format(time.RFC3339))
	params.Set("timeMax", to.Format(time.RFC3339))
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")
	params.Set("maxResults", "250")
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var page eventList
	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			page = eventList{}
			if err := json.Unmarshal(body, &page); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode events response: %w", err))
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("calendar api returned %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("calendar api returned %d: %s", resp.StatusCode, string(body)))
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(fetch, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return &page, nil
}

// DeleteEvent removes an event from the user's primary calendar. A 404 or
// 410 means the event is already gone and is treated as success.
func (c *Client) DeleteEvent(ctx context.Context, user *entities.User, eventID string) error {
	if !user.HasCalendarConnected() {
		return errors.ErrCalendarNotConnected
	}

	httpClient := c.provider.ClientFor(ctx, *user.OAuthRefreshToken)

	del := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, baseURL+"/"+url.PathEscape(eventID), nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK:
			return nil
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("calendar api returned %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("calendar api returned %d", resp.StatusCode))
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxElapsedTime = 15 * time.Second

	if err := backoff.Retry(del, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

// mapEvent converts a wire event to the normalized form. All-day events
// carry a date instead of a dateTime.
func mapEvent(item eventItem) (entities.CalendarEvent, error) {
	start, err := parseEventTime(item.Start)
	if err != nil {
		return entities.CalendarEvent{}, fmt.Errorf("bad start time: %w", err)
	}
	end, err := parseEventTime(item.End)
	if err != nil {
		return entities.CalendarEvent{}, fmt.Errorf("bad end time: %w", err)
	}

	ev := entities.CalendarEvent{
		ID:               item.ID,
		Title:            item.Summary,
		Description:      item.Description,
		Start:            start,
		End:              end,
		RecurringEventID: item.RecurringEventID,
		Organizer:        item.Organizer.Email,
	}
	for _, p := range item.Attendees {
		if p.Email == "" {
			continue
		}
		ev.Attendees = append(ev.Attendees, entities.CalendarAttendee{
			Email:    p.Email,
			Name:     p.DisplayName,
			Status:   p.ResponseStatus,
			Optional: p.Optional,
		})
	}
	return ev, nil
}

func parseEventTime(t eventTime) (time.Time, error) {
	if t.DateTime != "" {
		return time.Parse(time.RFC3339, t.DateTime)
	}
	if t.Date != "" {
		return time.Parse("2006-01-02", t.Date)
	}
	return time.Time{}, fmt.Errorf("event time missing")
}
