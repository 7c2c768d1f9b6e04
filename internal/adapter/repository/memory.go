package repository

import (
	"encoding/json"
	"errors"
	"reflect"
	"sync"

	"github.com/lojazap/lojazap-backend/pkg/tenant"
)

// Erros comuns dos repositórios em memória
var (
	ErrNotFound     = errors.New("registro não encontrado")
	ErrDuplicateKey = errors.New("registro já existe")
)

// Nomes das coleções do armazenamento em memória
const (
	collectionTenants    = "tenants"
	collectionCustomers  = "customers"
	collectionProducts   = "products"
	collectionCategories = "categories"
	collectionOffers     = "upsell_offers"
	collectionOrders     = "orders"
	collectionUsers      = "users"
	collectionCarts      = "abandoned_carts"
)

// memoryRecord é uma entrada do armazenamento com o carimbo de tenant
type memoryRecord struct {
	tenantID string
	value    interface{}
}

// MemoryStore guarda todas as entidades em memória, cada registro carimbado
// com o tenant dono. Nenhuma leitura cruza a fronteira de tenant e nenhuma
// escrita acontece sem tenant resolvido. É o armazenamento padrão quando não
// há DATABASE_URL configurada e o autoritativo nos testes.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]*memoryRecord
}

// NewMemoryStore cria um novo armazenamento em memória
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]*memoryRecord),
	}
}

// clone faz uma cópia profunda do valor para que chamadores nunca compartilhem
// ponteiros com o armazenamento
func clone(v interface{}) interface{} {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	out := reflect.New(reflect.TypeOf(v).Elem()).Interface()
	if err := json.Unmarshal(b, out); err != nil {
		return v
	}
	return out
}

// insert grava um novo registro carimbado com o tenant
func (s *MemoryStore) insert(collection, tenantID, id string, v interface{}) error {
	if tenantID == "" {
		return tenant.ErrNoActiveTenant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.data[collection]
	if !ok {
		coll = make(map[string]*memoryRecord)
		s.data[collection] = coll
	}

	if _, exists := coll[id]; exists {
		return ErrDuplicateKey
	}

	coll[id] = &memoryRecord{tenantID: tenantID, value: clone(v)}
	return nil
}

// get busca um registro pelo ID, respeitando a fronteira de tenant
func (s *MemoryStore) get(collection, tenantID, id string) (interface{}, error) {
	if tenantID == "" {
		return nil, tenant.ErrNoActiveTenant
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[collection][id]
	if !ok || rec.tenantID != tenantID {
		return nil, ErrNotFound
	}
	return clone(rec.value), nil
}

// list devolve todos os registros de um tenant em uma coleção
func (s *MemoryStore) list(collection, tenantID string) ([]interface{}, error) {
	if tenantID == "" {
		return nil, tenant.ErrNoActiveTenant
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]interface{}, 0)
	for _, rec := range s.data[collection] {
		if rec.tenantID == tenantID {
			out = append(out, clone(rec.value))
		}
	}
	return out, nil
}

// update substitui um registro existente do mesmo tenant
func (s *MemoryStore) update(collection, tenantID, id string, v interface{}) error {
	if tenantID == "" {
		return tenant.ErrNoActiveTenant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.data[collection][id]
	if !ok || rec.tenantID != tenantID {
		return ErrNotFound
	}

	rec.value = clone(v)
	return nil
}

// remove apaga um registro do tenant
func (s *MemoryStore) remove(collection, tenantID, id string) error {
	if tenantID == "" {
		return tenant.ErrNoActiveTenant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.data[collection][id]
	if !ok || rec.tenantID != tenantID {
		return ErrNotFound
	}

	delete(s.data[collection], id)
	return nil
}
