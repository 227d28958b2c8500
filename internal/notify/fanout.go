package notify

import "context"

// FanOut is the entry point handlers call after mutating a post, comment or
// friendship. It computes the operations with the pure engine and hands them
// to the dispatcher. Only context-validation errors propagate; delivery
// failures stay inside the dispatcher.
type FanOut struct {
	engine     *Engine
	dispatcher *Dispatcher
}

func NewFanOut(engine *Engine, dispatcher *Dispatcher) *FanOut {
	return &FanOut{engine: engine, dispatcher: dispatcher}
}

func (f *FanOut) OnCommentAdded(ctx context.Context, cc CommentContext) error {
	ops, err := f.engine.OnCommentAdded(cc)
	if err != nil {
		return err
	}
	f.dispatcher.Emit(ctx, cc.AuthorID, ops)
	return nil
}

func (f *FanOut) OnCommentTagsUpdated(ctx context.Context, cc CommentContext, newTags []uint) error {
	ops, err := f.engine.OnCommentTagsUpdated(cc, newTags)
	if err != nil {
		return err
	}
	f.dispatcher.Emit(ctx, cc.AuthorID, ops)
	return nil
}

func (f *FanOut) OnPostCreated(ctx context.Context, pc PostContext) error {
	ops, err := f.engine.OnPostCreated(pc)
	if err != nil {
		return err
	}
	f.dispatcher.Emit(ctx, pc.AuthorID, ops)
	return nil
}

func (f *FanOut) OnPostShared(ctx context.Context, sc ShareContext) error {
	ops, err := f.engine.OnPostShared(sc)
	if err != nil {
		return err
	}
	f.dispatcher.Emit(ctx, sc.SharerID, ops)
	return nil
}

func (f *FanOut) OnFriendRequest(ctx context.Context, kind EventKind, senderID, recipientID uint) error {
	ops, err := f.engine.OnFriendRequest(kind, senderID, recipientID)
	if err != nil {
		return err
	}
	f.dispatcher.Emit(ctx, senderID, ops)
	return nil
}
