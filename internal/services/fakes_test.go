package services

import (
	"context"
	"fmt"

	"guvi-backend/internal/models"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

type fakeClientRepo struct {
	users   *fakeUserRepo
	clients map[int]*models.Client
	nextID  int
}

func newFakeClientRepo(users *fakeUserRepo) *fakeClientRepo {
	return &fakeClientRepo{users: users, clients: map[int]*models.Client{}, nextID: 1}
}

func (r *fakeClientRepo) CreateWithUser(ctx context.Context, u *models.User, c *models.Client) error {
	if err := r.users.Create(ctx, u); err != nil {
		return err
	}
	c.UserID = u.ID
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) GetByUserID(ctx context.Context, userID int) (*models.Client, error) {
	for _, c := range r.clients {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeClientRepo) List(ctx context.Context, status string) ([]models.Client, error) {
	var out []models.Client
	for _, c := range r.clients {
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) UpdateStatus(ctx context.Context, c *models.Client) error {
	stored, ok := r.clients[c.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = c.Status
	stored.ApprovedAt = c.ApprovedAt
	stored.RejectedAt = c.RejectedAt
	return nil
}

type fakeTrainerRepo struct {
	users    *fakeUserRepo
	trainers map[int]*models.Trainer
	nextID   int
}

func newFakeTrainerRepo(users *fakeUserRepo) *fakeTrainerRepo {
	return &fakeTrainerRepo{users: users, trainers: map[int]*models.Trainer{}, nextID: 1}
}

func (r *fakeTrainerRepo) CreateWithUser(ctx context.Context, u *models.User, t *models.Trainer) error {
	if err := r.users.Create(ctx, u); err != nil {
		return err
	}
	t.UserID = u.ID
	t.ID = r.nextID
	r.nextID++
	cp := *t
	r.trainers[t.ID] = &cp
	return nil
}

func (r *fakeTrainerRepo) GetByID(ctx context.Context, id int) (*models.Trainer, error) {
	t, ok := r.trainers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTrainerRepo) GetByUserID(ctx context.Context, userID int) (*models.Trainer, error) {
	for _, t := range r.trainers {
		if t.UserID == userID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeTrainerRepo) List(ctx context.Context, status string) ([]models.Trainer, error) {
	var out []models.Trainer
	for _, t := range r.trainers {
		if status == "" || t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTrainerRepo) UpdateStatus(ctx context.Context, t *models.Trainer) error {
	stored, ok := r.trainers[t.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = t.Status
	stored.ApprovedAt = t.ApprovedAt
	stored.RejectedAt = t.RejectedAt
	return nil
}

type fakeTrainingRepo struct {
	trainings       map[int]*models.Training
	milestones      map[int]*models.Milestone
	nextTrainingID  int
	nextMilestoneID int
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{
		trainings:       map[int]*models.Training{},
		milestones:      map[int]*models.Milestone{},
		nextTrainingID:  1,
		nextMilestoneID: 1,
	}
}

func (r *fakeTrainingRepo) CreateWithMilestones(ctx context.Context, t *models.Training, milestones []models.Milestone) error {
	t.ID = r.nextTrainingID
	r.nextTrainingID++
	cp := *t
	r.trainings[t.ID] = &cp
	for i := range milestones {
		m := milestones[i]
		m.TrainingID = t.ID
		m.ID = r.nextMilestoneID
		r.nextMilestoneID++
		r.milestones[m.ID] = &m
	}
	return nil
}

func (r *fakeTrainingRepo) GetByID(ctx context.Context, id int) (*models.Training, error) {
	t, ok := r.trainings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTrainingRepo) GetMilestone(ctx context.Context, id int) (*models.Milestone, error) {
	m, ok := r.milestones[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeTrainingRepo) GetMilestones(ctx context.Context, trainingID int) ([]models.Milestone, error) {
	var out []models.Milestone
	for month := 1; ; month++ {
		found := false
		for _, m := range r.milestones {
			if m.TrainingID == trainingID && m.Month == month {
				out = append(out, *m)
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return out, nil
}

func (r *fakeTrainingRepo) UpdateMilestone(ctx context.Context, m *models.Milestone) error {
	stored, ok := r.milestones[m.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *m
	return nil
}

func (r *fakeTrainingRepo) UpdateMilestoneAndTraining(ctx context.Context, m *models.Milestone, t *models.Training) error {
	if err := r.UpdateMilestone(ctx, m); err != nil {
		return err
	}
	stored, ok := r.trainings[t.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *t
	return nil
}

func (r *fakeTrainingRepo) SetVerifiedByClient(ctx context.Context, t *models.Training) error {
	stored, ok := r.trainings[t.ID]
	if !ok {
		return ErrNotFound
	}
	stored.VerifiedByClient = t.VerifiedByClient
	stored.VerifiedAt = t.VerifiedAt
	return nil
}

func (r *fakeTrainingRepo) ListWithNames(ctx context.Context) ([]models.TrainingWithNames, error) {
	var out []models.TrainingWithNames
	for _, t := range r.trainings {
		out = append(out, models.TrainingWithNames{Training: *t})
	}
	return out, nil
}

func (r *fakeTrainingRepo) ListByClient(ctx context.Context, clientID int) ([]models.TrainingWithNames, error) {
	var out []models.TrainingWithNames
	for _, t := range r.trainings {
		if t.ClientID == clientID {
			out = append(out, models.TrainingWithNames{Training: *t})
		}
	}
	return out, nil
}

func (r *fakeTrainingRepo) ListByTrainer(ctx context.Context, trainerID int) ([]models.TrainingWithNames, error) {
	var out []models.TrainingWithNames
	for _, t := range r.trainings {
		if t.TrainerID == trainerID {
			out = append(out, models.TrainingWithNames{Training: *t})
		}
	}
	return out, nil
}

func (r *fakeTrainingRepo) GetOngoingByClient(ctx context.Context, clientID int) (*models.Training, error) {
	for _, t := range r.trainings {
		if t.ClientID == clientID && t.Status == models.TrainingStatusOngoing {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

type fakePORepo struct {
	pos         map[int]*models.PO
	nextID      int
	nextClient  int
	nextTrainer int
}

func newFakePORepo() *fakePORepo {
	return &fakePORepo{pos: map[int]*models.PO{}, nextID: 1, nextClient: 1, nextTrainer: 1}
}

func (r *fakePORepo) Create(ctx context.Context, po *models.PO) error {
	po.ID = r.nextID
	r.nextID++
	cp := *po
	r.pos[po.ID] = &cp
	return nil
}

func (r *fakePORepo) GetByID(ctx context.Context, id int) (*models.PO, error) {
	po, ok := r.pos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *po
	return &cp, nil
}

func (r *fakePORepo) NextClientPONumber(ctx context.Context) (string, error) {
	n := r.nextClient
	r.nextClient++
	return fmt.Sprintf("PO-CLIENT-%06d", n), nil
}

func (r *fakePORepo) NextTrainerPONumber(ctx context.Context) (string, error) {
	n := r.nextTrainer
	r.nextTrainer++
	return fmt.Sprintf("PO-TRAINER-%06d", n), nil
}

func (r *fakePORepo) GetClientPOByClient(ctx context.Context, clientID int) (*models.PO, error) {
	for _, po := range r.pos {
		if po.Type == models.POTypeClient && po.ClientID != nil && *po.ClientID == clientID {
			cp := *po
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakePORepo) GetTrainerPOByTraining(ctx context.Context, trainingID int) (*models.PO, error) {
	for _, po := range r.pos {
		if po.Type == models.POTypeTrainer && po.TrainingID != nil && *po.TrainingID == trainingID {
			cp := *po
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakePORepo) List(ctx context.Context, poType string) ([]models.POWithNames, error) {
	var out []models.POWithNames
	for _, po := range r.pos {
		if poType == "" || po.Type == poType {
			out = append(out, models.POWithNames{PO: *po})
		}
	}
	return out, nil
}

func (r *fakePORepo) ListByClient(ctx context.Context, clientID int) ([]models.PO, error) {
	var out []models.PO
	for _, po := range r.pos {
		if po.ClientID != nil && *po.ClientID == clientID {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (r *fakePORepo) ListByTrainer(ctx context.Context, trainerID int) ([]models.PO, error) {
	var out []models.PO
	for _, po := range r.pos {
		if po.Type == models.POTypeTrainer && po.TrainerID != nil && *po.TrainerID == trainerID {
			out = append(out, *po)
		}
	}
	return out, nil
}

func (r *fakePORepo) UpdateStatus(ctx context.Context, po *models.PO) error {
	stored, ok := r.pos[po.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = po.Status
	stored.ProcessedAt = po.ProcessedAt
	stored.ProcessedBy = po.ProcessedBy
	return nil
}

func (r *fakePORepo) Process(ctx context.Context, clientPO, trainerPO *models.PO) error {
	if err := r.UpdateStatus(ctx, clientPO); err != nil {
		return err
	}
	return r.Create(ctx, trainerPO)
}

type fakeInvoiceRepo struct {
	invoices    map[int]*models.Invoice
	nextID      int
	nextTrainer int
	nextClient  int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[int]*models.Invoice{}, nextID: 1, nextTrainer: 1, nextClient: 1}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	inv.ID = r.nextID
	r.nextID++
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id int) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) NextTrainerInvoiceNumber(ctx context.Context) (string, error) {
	n := r.nextTrainer
	r.nextTrainer++
	return fmt.Sprintf("INV-TRAINER-%06d", n), nil
}

func (r *fakeInvoiceRepo) NextClientInvoiceNumber(ctx context.Context) (string, error) {
	n := r.nextClient
	r.nextClient++
	return fmt.Sprintf("INV-CLIENT-%06d", n), nil
}

func (r *fakeInvoiceRepo) GetTrainerInvoiceByTraining(ctx context.Context, trainingID int) (*models.Invoice, error) {
	return r.byTrainingAndType(trainingID, models.InvoiceTypeTrainer)
}

func (r *fakeInvoiceRepo) GetClientInvoiceByTraining(ctx context.Context, trainingID int) (*models.Invoice, error) {
	return r.byTrainingAndType(trainingID, models.InvoiceTypeClient)
}

func (r *fakeInvoiceRepo) byTrainingAndType(trainingID int, invType string) (*models.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.TrainingID == trainingID && inv.Type == invType {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeInvoiceRepo) List(ctx context.Context, invType string) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		if invType == "" || inv.Type == invType {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByTrainer(ctx context.Context, trainerID int) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.Type == models.InvoiceTypeTrainer && inv.TrainerID != nil && *inv.TrainerID == trainerID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListByClient(ctx context.Context, clientID int) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.Type == models.InvoiceTypeClient && inv.ClientID != nil && *inv.ClientID == clientID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, inv *models.Invoice) error {
	stored, ok := r.invoices[inv.ID]
	if !ok {
		return ErrNotFound
	}
	*stored = *inv
	return nil
}

func (r *fakeInvoiceRepo) ApproveWithClientInvoice(ctx context.Context, trainerInv, clientInv *models.Invoice) error {
	if err := r.Update(ctx, trainerInv); err != nil {
		return err
	}
	return r.Create(ctx, clientInv)
}

type fakeNotificationRepo struct {
	notifications []models.Notification
	nextID        int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	n.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) ListUnread(ctx context.Context, userID int, role string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.Read || n.RecipientRole != role {
			continue
		}
		if role != models.RoleAdmin && n.RecipientID != userID {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID int, role string) error {
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			r.notifications[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID int, role string) error {
	for i := range r.notifications {
		if r.notifications[i].RecipientRole == role {
			r.notifications[i].Read = true
		}
	}
	return nil
}

type fakeSettingRepo struct {
	settings map[string]*models.SystemSetting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: map[string]*models.SystemSetting{}}
}

func (r *fakeSettingRepo) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	s, ok := r.settings[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSettingRepo) List(ctx context.Context) ([]models.SystemSetting, error) {
	var out []models.SystemSetting
	for _, s := range r.settings {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSettingRepo) Upsert(ctx context.Context, setting *models.SystemSetting) error {
	cp := *setting
	if existing, ok := r.settings[setting.SettingKey]; ok {
		cp.ID = existing.ID
	} else {
		cp.ID = len(r.settings) + 1
	}
	r.settings[setting.SettingKey] = &cp
	setting.ID = cp.ID
	return nil
}

// testEnv wires every service over the in-memory fakes.
type testEnv struct {
	users         *fakeUserRepo
	clients       *fakeClientRepo
	trainers      *fakeTrainerRepo
	trainings     *fakeTrainingRepo
	pos           *fakePORepo
	invoices      *fakeInvoiceRepo
	notifications *fakeNotificationRepo
	settings      *fakeSettingRepo

	notificationSvc *NotificationService
	clientSvc       *ClientService
	trainerSvc      *TrainerService
	trainingSvc     *TrainingService
	settingSvc      *SystemSettingService
	poSvc           *POService
	invoiceSvc      *InvoiceService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newFakeUserRepo(),
		trainings:     newFakeTrainingRepo(),
		pos:           newFakePORepo(),
		invoices:      newFakeInvoiceRepo(),
		notifications: newFakeNotificationRepo(),
		settings:      newFakeSettingRepo(),
	}
	env.clients = newFakeClientRepo(env.users)
	env.trainers = newFakeTrainerRepo(env.users)

	env.notificationSvc = NewNotificationService(env.notifications)
	env.clientSvc = NewClientService(env.clients, env.users, env.notificationSvc)
	env.trainerSvc = NewTrainerService(env.trainers, env.users, nil, env.notificationSvc)
	env.trainingSvc = NewTrainingService(env.trainings, env.clients, env.trainers, env.notificationSvc)
	env.settingSvc = NewSystemSettingService(env.settings)
	env.poSvc = NewPOService(env.pos, env.clients, env.trainers, env.trainings, env.settingSvc, env.notificationSvc)
	env.invoiceSvc = NewInvoiceService(env.invoices, env.pos, env.clients, env.trainers, env.trainings, env.settingSvc, env.notificationSvc)
	return env
}

// registerApprovedClient registers and approves a client, returning it.
func (env *testEnv) registerApprovedClient(ctx context.Context, email, duration string, budget float64) (*models.Client, error) {
	client, err := env.clientSvc.Register(ctx, models.RegisterClientRequest{
		Name:       "Acme Corp",
		Email:      email,
		Password:   "secret123",
		Technology: "Go",
		Duration:   duration,
		Budget:     budget,
	})
	if err != nil {
		return nil, err
	}
	return env.clientSvc.Approve(ctx, client.ID)
}

// registerApprovedTrainer registers and approves a trainer.
func (env *testEnv) registerApprovedTrainer(ctx context.Context, email string) (*models.Trainer, error) {
	trainer, err := env.trainerSvc.Register(ctx, models.RegisterTrainerRequest{
		Name:     "Priya Sharma",
		Email:    email,
		Password: "secret123",
		Skills:   []string{"Go", "Postgres"},
	})
	if err != nil {
		return nil, err
	}
	return env.trainerSvc.Approve(ctx, trainer.ID)
}
