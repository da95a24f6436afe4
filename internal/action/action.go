// Package action turns submitted form values into repository and session
// calls and reports the outcome as a user-facing State.
package action

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"robotdemo/internal/auth"
	"robotdemo/internal/models"
	"robotdemo/internal/robot"
)

const (
	MsgNameRequired  = "名前は必須です"
	MsgNameTooLong   = "名前は50文字以内で入力してください"
	MsgIDRequired    = "IDは必須です"
	MsgRobotNotFound = "ロボットが見つかりません"
	MsgUserNotFound  = "ユーザーが見つかりません"
	MsgEmailRequired = "メールアドレスは必須です"
)

// State is the result handed back to the form that submitted the action.
type State struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() State             { return State{Success: true} }
func fail(msg string) State { return State{Error: msg} }

func field(form url.Values, key string) (string, bool) {
	v, present := form[key]
	if !present || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func nameMessage(err error) string {
	if errors.Is(err, robot.ErrNameTooLong) {
		return MsgNameTooLong
	}
	return MsgNameRequired
}

// CreateRobot validates name and stores a robot. An unrecognised status
// falls back to inactive. The error return is reserved for store failures.
func CreateRobot(ctx context.Context, repo robot.Repository, form url.Values) (State, error) {
	name, present := field(form, "name")
	if !present {
		return fail(MsgNameRequired), nil
	}
	if err := robot.ValidateName(name); err != nil {
		return fail(nameMessage(err)), nil
	}
	status := models.StatusInactive
	if raw, present := field(form, "status"); present {
		if st, valid := robot.ParseStatus(raw); valid {
			status = st
		}
	}
	if _, err := repo.Create(ctx, robot.CreateInput{Name: name, Status: status}); err != nil {
		return State{}, err
	}
	return ok(), nil
}

// UpdateRobot renames the robot and, when status is a known value, changes
// its status. Unknown ids are reported, never created.
func UpdateRobot(ctx context.Context, repo robot.Repository, form url.Values) (State, error) {
	id, present := field(form, "id")
	if !present {
		return fail(MsgIDRequired), nil
	}
	name, present := field(form, "name")
	if !present {
		return fail(MsgNameRequired), nil
	}
	if err := robot.ValidateName(name); err != nil {
		return fail(nameMessage(err)), nil
	}
	in := robot.UpdateInput{Name: &name}
	if raw, present := field(form, "status"); present {
		if st, valid := robot.ParseStatus(raw); valid {
			in.Status = &st
		}
	}
	updated, err := repo.Update(ctx, id, in)
	if err != nil {
		return State{}, err
	}
	if updated == nil {
		return fail(MsgRobotNotFound), nil
	}
	return ok(), nil
}

func DeleteRobot(ctx context.Context, repo robot.Repository, form url.Values) (State, error) {
	id, present := field(form, "id")
	if !present {
		return fail(MsgIDRequired), nil
	}
	deleted, err := repo.Delete(ctx, id)
	if err != nil {
		return State{}, err
	}
	if !deleted {
		return fail(MsgRobotNotFound), nil
	}
	return ok(), nil
}

// Login requires a non-empty email and sets the session cookie on success.
func Login(w http.ResponseWriter, r *http.Request, svc *auth.Service, form url.Values) (State, error) {
	email, _ := field(form, "email")
	if email == "" {
		return fail(MsgEmailRequired), nil
	}
	err := svc.Login(w, r, email)
	if errors.Is(err, auth.ErrUserNotFound) {
		return fail(MsgUserNotFound), nil
	}
	if err != nil {
		return State{}, err
	}
	return ok(), nil
}
