package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo    *ProjectRepo
	labRepo        *ResearchLabRepo
	professorRepo  *ProfessorRepo
	departmentRepo *DepartmentRepo
	matchingRepo   *MatchingRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:    NewProjectRepo(db),
		labRepo:        NewResearchLabRepo(db),
		professorRepo:  NewProfessorRepo(db),
		departmentRepo: NewDepartmentRepo(db),
		matchingRepo:   NewMatchingRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ResearchLabRepo() *ResearchLabRepo {
	return d.labRepo
}

func (d Database) ProfessorRepo() *ProfessorRepo {
	return d.professorRepo
}

func (d Database) DepartmentRepo() *DepartmentRepo {
	return d.departmentRepo
}

func (d Database) MatchingRepo() *MatchingRepo {
	return d.matchingRepo
}
