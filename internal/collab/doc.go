// Package collab defines the collaborators that sit next to a remote
// connection without being part of it: the process that serves the remote
// end, and the FedCM sign-in dialog of an active session.
//
// A Service only contributes its base URL. Connect starts it and opens a
// connection on that URL:
//
//	conn, err := collab.Connect(ctx, svc, remote.WithTimeout(30*time.Second))
//
// Dialog wraps any FedCM implementation; RemoteFedCM implements it over the
// fedcm commands of a connection.
package collab
