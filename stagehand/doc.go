// Package stagehand contains the request and response models of the
// Stagehand browser-automation API.
//
// Every model keeps its wire document and decodes fields on access:
//
//	req, err := stagehand.DecodeActRequest(body)
//	if err != nil {
//	    return err // malformed or invalid
//	}
//	in, _ := req.Input()
//	err = in.Match(
//	    func(a stagehand.Action) error { return replay(a) },
//	    func(instruction string) error { return plan(instruction) },
//	)
//
// Unknown keys, enum values the client does not know yet, and act inputs of
// an unknown shape are preserved when the model is encoded again.
package stagehand
