// Package adminui is the client-side core of the option admin page: the
// in-memory option store the UI renders from, the gateway that submits edits
// to the action endpoint and reconciles the store with the outcome, the
// editor mode machine and the notification channel.
//
// The package has no presentation code. A UI layer renders Store.Options(),
// forwards user events to the Store or the Gateway and shows Notifications.
// It opens a dialog only after Editor accepts the transition and calls
// Editor.Close when the dialog is dismissed or its submission returns.
package adminui
