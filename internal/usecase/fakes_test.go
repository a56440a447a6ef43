package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"sms_invoicer/internal/domain/entities"
)

// In-memory doubles with the same conditional-write semantics as the
// DynamoDB repositories.

type fakeClientRepo struct {
	mu        sync.Mutex
	clients   map[string]entities.Client
	creates   int
	createErr error
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]entities.Client{}}
}

func (r *fakeClientRepo) key(businessID, name string) string {
	return businessID + "#" + entities.ClientNameKey(name)
}

func (r *fakeClientRepo) FindByName(_ context.Context, businessID, name string) (entities.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients[r.key(businessID, name)], nil
}

func (r *fakeClientRepo) Create(_ context.Context, c entities.Client) (entities.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return entities.Client{}, r.createErr
	}
	k := r.key(c.BusinessID, c.Name)
	if _, ok := r.clients[k]; ok {
		return entities.Client{}, nil
	}
	r.creates++
	r.clients[k] = c
	return c, nil
}

func (r *fakeClientRepo) ListByBusiness(_ context.Context, businessID string) ([]entities.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Client
	for _, c := range r.clients {
		if c.BusinessID == businessID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Update(_ context.Context, previous, updated entities.Client) (entities.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oldKey, newKey := r.key(previous.BusinessID, previous.Name), r.key(updated.BusinessID, updated.Name)
	if cur, ok := r.clients[oldKey]; !ok || cur.ID != previous.ID {
		return entities.Client{}, nil
	}
	if _, taken := r.clients[newKey]; taken && newKey != oldKey {
		return entities.Client{}, nil
	}
	delete(r.clients, oldKey)
	r.clients[newKey] = updated
	return updated, nil
}

type fakeConversationRepo struct {
	mu          sync.Mutex
	convs       map[string]entities.ConversationState
	transitions []entities.ConversationPhase
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{convs: map[string]entities.ConversationState{}}
}

func (r *fakeConversationRepo) GetActive(_ context.Context, businessID, phone string) (entities.ConversationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.convs[businessID+"#"+phone]
	if !c.Active() {
		return entities.ConversationState{}, nil
	}
	return c, nil
}

func (r *fakeConversationRepo) Create(_ context.Context, c entities.ConversationState) (entities.ConversationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := c.BusinessID + "#" + c.PhoneNumber
	if r.convs[k].Active() {
		return entities.ConversationState{}, nil
	}
	r.convs[k] = c
	return c, nil
}

func (r *fakeConversationRepo) Update(_ context.Context, c entities.ConversationState, expected entities.ConversationPhase, patch entities.ConversationPatch) (entities.ConversationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := c.BusinessID + "#" + c.PhoneNumber
	stored, ok := r.convs[k]
	if !ok || stored.ID != c.ID || stored.Phase != expected {
		return entities.ConversationState{}, nil
	}
	if !stored.Phase.CanTransitionTo(patch.Phase) {
		return entities.ConversationState{}, fmt.Errorf("backward transition %s -> %s", stored.Phase, patch.Phase)
	}
	updated := patch.Apply(stored)
	updated.UpdatedAt = time.Now().UTC()
	r.convs[k] = updated
	r.transitions = append(r.transitions, updated.Phase)
	return updated, nil
}

func (r *fakeConversationRepo) Delete(_ context.Context, c entities.ConversationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := c.BusinessID + "#" + c.PhoneNumber
	if r.convs[k].ID == c.ID {
		delete(r.convs, k)
	}
	return nil
}

func (r *fakeConversationRepo) stored(businessID, phone string) (entities.ConversationState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[businessID+"#"+phone]
	return c, ok
}

type fakeDocumentRepo struct {
	mu       sync.Mutex
	docs     map[string]entities.Document
	counters map[string]int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[string]entities.Document{}, counters: map[string]int{}}
}

func (r *fakeDocumentRepo) Create(_ context.Context, d entities.Document) (entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[d.ID]; ok {
		return entities.Document{}, nil
	}
	r.docs[d.ID] = d
	return d, nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id string) (entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[id], nil
}

func (r *fakeDocumentRepo) UpdateArtifacts(_ context.Context, id, pdfURL, paymentLink string) (entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return entities.Document{}, nil
	}
	d.PDFURL, d.PaymentLink = pdfURL, paymentLink
	r.docs[id] = d
	return d, nil
}

func (r *fakeDocumentRepo) NextNumber(_ context.Context, businessID string, docType entities.DocumentType) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := businessID + "#" + string(docType)
	r.counters[k]++
	return fmt.Sprintf("%s-%05d", docType.NumberPrefix(), r.counters[k]), nil
}

func (r *fakeDocumentRepo) ListByBusiness(_ context.Context, businessID string, docType entities.DocumentType) ([]entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Document
	for _, d := range r.docs {
		if d.BusinessID == businessID && d.Type == docType {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *fakeDocumentRepo) all() []entities.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	return out
}

type fakeBusinessRepo struct {
	byID map[string]entities.Business
}

func (r *fakeBusinessRepo) Create(_ context.Context, b entities.Business) (entities.Business, error) {
	r.byID[b.ID] = b
	return b, nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, b entities.Business) (entities.Business, error) {
	if _, ok := r.byID[b.ID]; !ok {
		return entities.Business{}, nil
	}
	r.byID[b.ID] = b
	return b, nil
}

func (r *fakeBusinessRepo) GetByID(_ context.Context, id string) (entities.Business, error) {
	return r.byID[id], nil
}

func (r *fakeBusinessRepo) GetByPhone(_ context.Context, phone string) (entities.Business, error) {
	for _, b := range r.byID {
		if b.PhoneNumber == phone {
			return b, nil
		}
	}
	return entities.Business{}, nil
}

type fakeMessageLog struct {
	mu       sync.Mutex
	messages map[string]entities.SMSMessage
}

func newFakeMessageLog() *fakeMessageLog {
	return &fakeMessageLog{messages: map[string]entities.SMSMessage{}}
}

func (l *fakeMessageLog) Record(_ context.Context, m entities.SMSMessage) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.messages[m.ID]; ok {
		return false, nil
	}
	l.messages[m.ID] = m
	return true, nil
}

func (l *fakeMessageLog) UpdateStatus(_ context.Context, id, status string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.messages[id]
	if !ok {
		return errors.New("not found")
	}
	m.Status = status
	l.messages[id] = m
	return nil
}

func (l *fakeMessageLog) byDirection(d entities.MessageDirection) []entities.SMSMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []entities.SMSMessage
	for _, m := range l.messages {
		if m.Direction == d {
			out = append(out, m)
		}
	}
	return out
}

type sentSMS struct {
	to   string
	body string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentSMS
	err  error
}

func (n *fakeNotifier) SendReply(_ context.Context, to, body string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return "", n.err
	}
	n.sent = append(n.sent, sentSMS{to: to, body: body})
	return fmt.Sprintf("SMout%d", len(n.sent)), nil
}

func (n *fakeNotifier) last() sentSMS {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentSMS{}
	}
	return n.sent[len(n.sent)-1]
}
