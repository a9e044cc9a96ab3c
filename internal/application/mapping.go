package application

import (
	"errors"

	"github.com/example/group-scheduler/internal/persistence"
)

func toApplicationUser(model persistence.User) User {
	return User{
		ID:          model.ID,
		Email:       model.Email,
		DisplayName: model.DisplayName,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toApplicationGroup(model persistence.Group) Group {
	return Group{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatorID:   model.CreatorID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toApplicationBusyInterval(model persistence.BusyInterval) BusyInterval {
	return BusyInterval{
		ID:        model.ID,
		GroupID:   model.GroupID,
		UserID:    model.UserID,
		Date:      model.Date,
		StartTime: model.StartTime,
		EndTime:   model.EndTime,
		CreatedAt: model.CreatedAt,
	}
}

func toApplicationEvent(model persistence.Event) Event {
	return Event{
		ID:          model.ID,
		GroupID:     model.GroupID,
		CreatorID:   model.CreatorID,
		Title:       model.Title,
		Description: model.Description,
		Start:       model.Start,
		End:         model.End,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toApplicationInviteLink(model persistence.InviteLink) InviteLink {
	return InviteLink{
		ID:        model.ID,
		GroupID:   model.GroupID,
		Code:      model.Code,
		CreatedBy: model.CreatedBy,
		CreatedAt: model.CreatedAt,
		ExpiresAt: model.ExpiresAt,
		IsActive:  model.IsActive,
	}
}

// mapStoreError lifts persistence sentinels into application sentinels.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrAlreadyExists
	default:
		return err
	}
}
