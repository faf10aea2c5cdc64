package inmemdb

import (
	"sync"

	"github.com/jkatembo/kambi/core/class"
	"github.com/jkatembo/kambi/core/selection"
	"github.com/jkatembo/kambi/core/user"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	classTable struct {
		mutex sync.RWMutex
		table map[string]*class.Class
	}

	selectionTable struct {
		mutex sync.RWMutex
		table map[string]*selection.Selection
	}

	DB struct {
		user      *userTable
		class     *classTable
		selection *selectionTable
	}
)

func NewDB() *DB {
	return &DB{
		user:      &userTable{table: make(map[string]*user.User)},
		class:     &classTable{table: make(map[string]*class.Class)},
		selection: &selectionTable{table: make(map[string]*selection.Selection)},
	}
}
